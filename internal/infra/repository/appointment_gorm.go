package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Services / Shop
// --------------------------------------------------

func (r *AppointmentGormRepository) FindServicesByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) GetShop(ctx context.Context) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeShopNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateWithServices(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := ap.Services
		ap.Services = nil

		if err := tx.Omit("Services").Create(ap).Error; err != nil {
			return err
		}

		for i := range links {
			links[i].AppointmentID = ap.ID
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		ap.Services = links
		return nil
	})
}

func (r *AppointmentGormRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Order("date ASC").
		Order("created_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) AppointmentIDsByService(
	ctx context.Context,
	serviceIDs []uuid.UUID,
) (map[uuid.UUID][]uuid.UUID, error) {

	out := make(map[uuid.UUID][]uuid.UUID, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}

	var links []models.AppointmentService
	if err := r.db.WithContext(ctx).
		Select("appointment_id", "service_id").
		Where("service_id IN ?", serviceIDs).
		Order("appointment_id").
		Find(&links).Error; err != nil {
		return nil, err
	}

	for _, l := range links {
		out[l.ServiceID] = append(out[l.ServiceID], l.AppointmentID)
	}
	return out, nil
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
