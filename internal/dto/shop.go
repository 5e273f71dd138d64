package dto

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

type ShopRequest struct {
	Name        string           `json:"name"`
	Tagline     string           `json:"tagline"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	Phone       string           `json:"phone"`
	Hours       string           `json:"hours"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	Services    []ServiceRequest `json:"services"`
	Reviews     []ReviewRequest  `json:"reviews"`
}

// ToModel validates the payload and builds the shop with its children.
func (r ShopRequest) ToModel() (*models.Shop, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name is required")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return nil, httperr.ErrValidation("rating must be between 0 and 5")
	}

	shop := &models.Shop{
		Name:        name,
		Tagline:     r.Tagline,
		Location:    r.Location,
		Description: r.Description,
		Phone:       r.Phone,
		Hours:       r.Hours,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Services:    make([]models.Service, 0, len(r.Services)),
		Reviews:     make([]models.Review, 0, len(r.Reviews)),
	}

	for _, s := range r.Services {
		f, err := s.Validate()
		if err != nil {
			return nil, err
		}
		shop.Services = append(shop.Services, models.Service{
			Name:        f.Name,
			Description: f.Description,
			Price:       f.Price,
			Duration:    f.Duration,
		})
	}

	for _, rv := range r.Reviews {
		if strings.TrimSpace(rv.Name) == "" {
			return nil, httperr.ErrValidation("review name is required")
		}
		shop.Reviews = append(shop.Reviews, models.Review{
			Name:    strings.TrimSpace(rv.Name),
			Rating:  rv.Rating,
			Comment: rv.Comment,
			Date:    rv.Date,
		})
	}

	return shop, nil
}
