package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "Unauthorized.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, "me_get", httperr.ErrBusiness(httperr.CodeUserNotFound))
			return
		}
		httperr.Respond(c, "me_get", err)
		return
	}

	httpresp.OK(c, gin.H{"user": dto.NewUserResponse(user)})
}

// ListUsers is the admin user directory.
func (h *MeHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		httperr.Respond(c, "user_list", err)
		return
	}

	httpresp.Array(c, dto.NewUserResponses(users))
}
