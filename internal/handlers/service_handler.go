package handlers

import (
	"context"
	"log/slog"
	"net/http"

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

// ShopStore is the persistence the shop and service handlers need.
type ShopStore interface {
	GetShop(ctx context.Context, withChildren bool) (*models.Shop, error)
	ReplaceShop(ctx context.Context, shop *models.Shop) error

	ListServices(ctx context.Context, shopID uuid.UUID) ([]models.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}

// LinkReader derives Service.AppointmentIDs from the link table.
type LinkReader interface {
	AppointmentIDsByService(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

type ServiceHandler struct {
	store ShopStore
	links LinkReader
	cache cache.Cache
	audit audit.Recorder
}

func NewServiceHandler(store ShopStore, links LinkReader, c cache.Cache, rec audit.Recorder) *ServiceHandler {
	return &ServiceHandler{store: store, links: links, cache: c, audit: rec}
}

func (h *ServiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	shop, err := h.store.GetShop(ctx, false)
	if httperr.IsBusiness(err, httperr.CodeShopNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": httperr.CodeShopNotFound,
			"message":    "Shop must be created first.",
			"services":   []models.Service{},
		})
		return
	}
	if err != nil {
		httperr.Respond(c, "service_list", err)
		return
	}

	services, err := h.store.ListServices(ctx, shop.ID)
	if err != nil {
		httperr.Respond(c, "service_list", err)
		return
	}
	if err := fillAppointmentIDs(ctx, h.links, services); err != nil {
		httperr.Respond(c, "service_list", err)
		return
	}

	httpresp.Array(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	shop, err := h.store.GetShop(ctx, false)
	if err != nil {
		httperr.Respond(c, "service_create", err)
		return
	}

	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid service payload.")
		return
	}
	fields, err := req.Validate()
	if err != nil {
		httperr.Respond(c, "service_create", err)
		return
	}

	svc := models.Service{
		ShopID:         shop.ID,
		Name:           fields.Name,
		Description:    fields.Description,
		Price:          fields.Price,
		Duration:       fields.Duration,
		AppointmentIDs: []uuid.UUID{},
	}
	if err := h.store.CreateService(ctx, &svc); err != nil {
		httperr.Respond(c, "service_create", err)
		return
	}

	h.afterMutation(c, audit.ActionServiceCreated, svc.ID)
	httpresp.Created(c, svc)
}

// Update replaces name, description, price and duration.
func (h *ServiceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid service payload.")
		return
	}
	fields, err := req.Validate()
	if err != nil {
		httperr.Respond(c, "service_update", err)
		return
	}

	svc := models.Service{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Duration:    fields.Duration,
	}
	svc.ID = id
	if err := h.store.UpdateService(ctx, &svc); err != nil {
		httperr.Respond(c, "service_update", err)
		return
	}

	updated, err := h.store.GetService(ctx, id)
	if err != nil {
		httperr.Respond(c, "service_update", err)
		return
	}
	one := []models.Service{*updated}
	if err := fillAppointmentIDs(ctx, h.links, one); err != nil {
		httperr.Respond(c, "service_update", err)
		return
	}

	h.afterMutation(c, audit.ActionServiceUpdated, id)
	httpresp.OK(c, one[0])
}

// Delete leaves appointments and their service links untouched.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteService(c.Request.Context(), id); err != nil {
		httperr.Respond(c, "service_delete", err)
		return
	}

	h.afterMutation(c, audit.ActionServiceDeleted, id)
	httpresp.Message(c, "Service deleted successfully")
}

func (h *ServiceHandler) afterMutation(c *gin.Context, action string, id uuid.UUID) {
	invalidateShop(c, h.cache)

	var actor uuid.UUID
	if ident, ok := middleware.CurrentIdentity(c); ok {
		actor = ident.UserID
	}
	h.audit.Dispatch(audit.Event{
		UserID:   audit.UserRef(actor),
		Action:   action,
		Entity:   "service",
		EntityID: id.String(),
	})
}

func fillAppointmentIDs(ctx context.Context, links LinkReader, services []models.Service) error {
	ids := make([]uuid.UUID, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}

	byService, err := links.AppointmentIDsByService(ctx, ids)
	if err != nil {
		return err
	}

	for i := range services {
		services[i].AppointmentIDs = byService[services[i].ID]
		if services[i].AppointmentIDs == nil {
			services[i].AppointmentIDs = []uuid.UUID{}
		}
	}
	return nil
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Resource not found.")
		return uuid.Nil, false
	}
	return id, true
}

func invalidateShop(c *gin.Context, sc cache.Cache) {
	if err := sc.Delete(c.Request.Context(), cache.KeyShop); err != nil {
		slog.WarnContext(c.Request.Context(), "shop cache invalidation failed", "err", err)
	}
}
