package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	Base
	ShopID uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int             `gorm:"not null" json:"duration"`

	// derived from appointment_services on read
	AppointmentIDs []uuid.UUID `gorm:"-" json:"appointmentIds"`
}
