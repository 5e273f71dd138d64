package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ShopGormRepository persists the singleton shop with its services and reviews.
type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

// GetShop returns the oldest shop row, or shop_not_found.
func (r *ShopGormRepository) GetShop(ctx context.Context, withChildren bool) (*models.Shop, error) {
	q := r.db.WithContext(ctx)
	if withChildren {
		q = q.
			Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
			Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
	}

	var shop models.Shop
	err := q.Order("created_at ASC").First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeShopNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// ReplaceShop deletes every review, service and shop, then inserts shop with
// its nested services and reviews. Appointment links to the old services are
// left in place.
func (r *ShopGormRepository) ReplaceShop(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		if err := all.Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.Shop{}).Error; err != nil {
			return err
		}

		return tx.Create(shop).Error
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ShopGormRepository) ListServices(ctx context.Context, shopID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ShopGormRepository) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ShopGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

// UpdateService overwrites every editable field, zero values included.
func (r *ShopGormRepository) UpdateService(ctx context.Context, svc *models.Service) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", svc.ID).
		Select("name", "description", "price", "duration", "updated_at").
		Updates(svc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

func (r *ShopGormRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
