package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Appointment struct {
	Base

	CustomerName  string `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail string `gorm:"size:100;not null" json:"customerEmail"`
	CustomerPhone string `gorm:"size:30;not null" json:"customerPhone"`

	Date time.Time `gorm:"type:date;index;not null" json:"date"`
	// slot label as picked in the booking form, e.g. "10:30 AM"
	Time string `gorm:"size:20;not null" json:"time"`

	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	TotalDuration int             `gorm:"not null" json:"totalDuration"`

	Status string `gorm:"size:20;default:'pending';not null" json:"status"`

	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`
}

// AppointmentService links an appointment to a service and snapshots the
// service as booked. There is no foreign key to services: deleting a
// service leaves the link behind.
type AppointmentService struct {
	AppointmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ServiceID     uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"serviceId"`

	Name     string          `gorm:"size:100;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration int             `gorm:"not null" json:"duration"`
}
