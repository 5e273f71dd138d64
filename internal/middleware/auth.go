package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/session"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextEmail    = "userEmail"
	ContextUsername = "username"
)

// Identity is what handlers get to know about the caller.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Username string
	Role     string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func AuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Unauthorized.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Unauthorized.")
			return
		}

		claims, err := sessions.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Unauthorized.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUsername, claims.Username)

		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Unauthorized.")
			return
		}
		if !id.IsAdmin() {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "Admin access required.")
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return Identity{}, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return Identity{}, false
	}

	return Identity{
		UserID:   userID,
		Email:    c.GetString(ContextEmail),
		Username: c.GetString(ContextUsername),
		Role:     c.GetString(ContextUserRole),
	}, true
}
