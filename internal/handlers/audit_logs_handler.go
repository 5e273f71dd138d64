package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// auditQuery holds the optional filters of the audit log listing. to is
// inclusive of its whole day.
type auditQuery struct {
	action string
	entity string
	userID uuid.UUID
	from   time.Time
	to     time.Time

	page  int
	limit int
}

func parseAuditQuery(c *gin.Context) (auditQuery, error) {
	q := auditQuery{
		action: c.Query("action"),
		entity: c.Query("entity"),
		page:   1,
		limit:  auditDefaultLimit,
	}

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		q.page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= auditMaxLimit {
		q.limit = l
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return auditQuery{}, httperr.ErrValidation("userId must be a valid id")
		}
		q.userID = id
	}

	var err error
	if q.from, err = parseDay(c.Query("from")); err != nil {
		return auditQuery{}, httperr.ErrValidation("from must be YYYY-MM-DD")
	}
	if q.to, err = parseDay(c.Query("to")); err != nil {
		return auditQuery{}, httperr.ErrValidation("to must be YYYY-MM-DD")
	}

	return q, nil
}

func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (q auditQuery) apply(db *gorm.DB) *gorm.DB {
	if q.action != "" {
		db = db.Where("action = ?", q.action)
	}
	if q.entity != "" {
		db = db.Where("entity = ?", q.entity)
	}
	if q.userID != uuid.Nil {
		db = db.Where("user_id = ?", q.userID)
	}
	if !q.from.IsZero() {
		db = db.Where("created_at >= ?", q.from)
	}
	if !q.to.IsZero() {
		db = db.Where("created_at < ?", q.to.AddDate(0, 0, 1))
	}
	return db
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q, err := parseAuditQuery(c)
	if err != nil {
		httperr.Respond(c, "audit_list", err)
		return
	}

	base := q.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.Respond(c, "audit_count", err)
		return
	}

	logs := []models.AuditLog{}
	if err := base.
		Order("created_at DESC").
		Order("id DESC").
		Limit(q.limit).
		Offset((q.page - 1) * q.limit).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, "audit_list", err)
		return
	}

	httpresp.OK(c, gin.H{
		"page":  q.page,
		"limit": q.limit,
		"total": total,
		"logs":  logs,
	})
}
