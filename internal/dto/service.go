package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ServiceRequest is used for both create and full replace.
type ServiceRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *json.Number     `json:"duration"`
}

type ServiceFields struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    int
}

func (r ServiceRequest) Validate() (ServiceFields, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return ServiceFields{}, httperr.ErrValidation("name is required")
	}
	if r.Price == nil || r.Price.IsNegative() {
		return ServiceFields{}, httperr.ErrValidation("price must be a non-negative number")
	}
	if r.Duration == nil {
		return ServiceFields{}, httperr.ErrValidation("duration is required")
	}
	minutes, err := Minutes(*r.Duration)
	if err != nil || minutes <= 0 {
		return ServiceFields{}, httperr.ErrValidation("duration must be a positive whole number of minutes")
	}

	return ServiceFields{
		Name:        name,
		Description: strings.TrimSpace(r.Description),
		Price:       *r.Price,
		Duration:    minutes,
	}, nil
}
