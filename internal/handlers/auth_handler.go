package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Manager
	audit    audit.Recorder

	// nil skips the MX lookup
	domainCheck func(ctx context.Context, email string) bool
}

func NewAuthHandler(db *gorm.DB, sessions *session.Manager, rec audit.Recorder, checkEmailDomain bool) *AuthHandler {
	h := &AuthHandler{db: db, sessions: sessions, audit: rec}
	if checkEmailDomain {
		h.domainCheck = validators.NewEmailDomainChecker(nil, 0).Valid
	}
	return h
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "username, email and password (min 6 characters) are required.")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "username is required.")
		return
	}

	email, ok := dto.NormalizeEmail(req.Email)
	if !ok {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "A valid email is required.")
		return
	}

	if h.domainCheck != nil && !h.domainCheck(c.Request.Context(), email) {
		httperr.Respond(c, "auth_register", httperr.ErrBusiness(httperr.CodeInvalidEmailDomain))
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		httperr.Respond(c, "auth_register", err)
		return
	}
	if count > 0 {
		httperr.Respond(c, "auth_register", httperr.ErrBusiness(httperr.CodeUserAlreadyExists))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, "auth_register", err)
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		// a concurrent registration can win between the count and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = httperr.ErrBusiness(httperr.CodeUserAlreadyExists)
		}
		httperr.Respond(c, "auth_register", err)
		return
	}

	token, err := h.sessions.Issue(&user)
	if err != nil {
		httperr.Respond(c, "auth_register", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.UserRef(user.ID),
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: user.ID.String(),
	})

	httpresp.Created(c, gin.H{
		"message": "User created successfully",
		"user":    dto.NewUserResponse(user),
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "email and password are required.")
		return
	}

	email, ok := dto.NormalizeEmail(req.Email)
	if !ok {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "A valid email is required.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, "auth_login", httperr.ErrBusiness(httperr.CodeUserNotFound))
			return
		}
		httperr.Respond(c, "auth_login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httperr.Respond(c, "auth_login", httperr.ErrBusiness(httperr.CodeInvalidCredentials))
		return
	}

	token, err := h.sessions.Issue(&user)
	if err != nil {
		httperr.Respond(c, "auth_login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  dto.NewUserResponse(user),
		"token": token,
	})
}
