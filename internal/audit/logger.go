package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ActionAppointmentCreated = "appointment_created"
	ActionServiceCreated     = "service_created"
	ActionServiceUpdated     = "service_updated"
	ActionServiceDeleted     = "service_deleted"
	ActionShopReplaced       = "shop_replaced"
	ActionUserRegistered     = "user_registered"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&entry).Error
}
