package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest is the booking form payload. Totals may be omitted.
type CreateBookingRequest struct {
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Date             string           `json:"date"`
	TimeSlot         string           `json:"timeSlot"`
	SelectedServices []string         `json:"selectedServices"`
	TotalCost        *decimal.Decimal `json:"totalCost"`
	TotalDuration    *json.Number     `json:"totalDuration"`
}
