package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Services --------
	FindServicesByIDs(
		ctx context.Context,
		ids []uuid.UUID,
	) ([]models.Service, error)

	// shop lookup used for the confirmation email
	GetShop(ctx context.Context) (*models.Shop, error)

	// -------- Appointment --------

	// CreateWithServices writes ap and every ap.Services link in one
	// transaction.
	CreateWithServices(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListAll orders by date then creation time, both ascending.
	ListAll(ctx context.Context) ([]models.Appointment, error)

	// ListForUser orders by date descending.
	ListForUser(
		ctx context.Context,
		userID uuid.UUID,
	) ([]models.Appointment, error)

	// AppointmentIDsByService reads the link table for the given services.
	AppointmentIDsByService(
		ctx context.Context,
		serviceIDs []uuid.UUID,
	) (map[uuid.UUID][]uuid.UUID, error)
}
