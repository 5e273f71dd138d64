package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ShopHandler struct {
	store ShopStore
	links LinkReader
	cache cache.Cache
	ttl   time.Duration
	audit audit.Recorder
}

func NewShopHandler(store ShopStore, links LinkReader, c cache.Cache, ttl time.Duration, rec audit.Recorder) *ShopHandler {
	return &ShopHandler{store: store, links: links, cache: c, ttl: ttl, audit: rec}
}

func (h *ShopHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if b, ok, err := h.cache.Get(ctx, cache.KeyShop); err != nil {
		slog.WarnContext(ctx, "shop cache read failed", "err", err)
	} else if ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	shop, err := h.store.GetShop(ctx, true)
	if httperr.IsBusiness(err, httperr.CodeShopNotFound) {
		httperr.NotFound(c, httperr.CodeShopNotFound, "No shop found.")
		return
	}
	if err != nil {
		httperr.Respond(c, "shop_get", err)
		return
	}

	normalizeShop(shop)
	if err := fillAppointmentIDs(ctx, h.links, shop.Services); err != nil {
		httperr.Respond(c, "shop_get", err)
		return
	}

	b, err := json.Marshal(shop)
	if err != nil {
		httperr.Respond(c, "shop_get", err)
		return
	}
	if err := h.cache.Set(ctx, cache.KeyShop, b, h.ttl); err != nil {
		slog.WarnContext(ctx, "shop cache write failed", "err", err)
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

// Replace wipes the current shop with its services and reviews and stores
// the new one.
func (h *ShopHandler) Replace(c *gin.Context) {
	var req dto.ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid shop payload.")
		return
	}

	shop, err := req.ToModel()
	if err != nil {
		httperr.Respond(c, "shop_replace", err)
		return
	}

	if err := h.store.ReplaceShop(c.Request.Context(), shop); err != nil {
		httperr.Respond(c, "shop_replace", err)
		return
	}

	invalidateShop(c, h.cache)

	var actor uuid.UUID
	if ident, ok := middleware.CurrentIdentity(c); ok {
		actor = ident.UserID
	}
	h.audit.Dispatch(audit.Event{
		UserID:   audit.UserRef(actor),
		Action:   audit.ActionShopReplaced,
		Entity:   "shop",
		EntityID: shop.ID.String(),
		Metadata: map[string]any{"services": len(shop.Services), "reviews": len(shop.Reviews)},
	})

	normalizeShop(shop)
	for i := range shop.Services {
		shop.Services[i].AppointmentIDs = []uuid.UUID{}
	}
	httpresp.Created(c, shop)
}

func normalizeShop(shop *models.Shop) {
	if shop.Services == nil {
		shop.Services = []models.Service{}
	}
	if shop.Reviews == nil {
		shop.Reviews = []models.Review{}
	}
}
