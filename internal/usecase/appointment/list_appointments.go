package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// ListAppointments serves the admin dashboard and the customer's own list.
type ListAppointments struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListAppointments(repo domain.Repository, now func() time.Time) *ListAppointments {
	if now == nil {
		now = time.Now
	}
	return &ListAppointments{repo: repo, now: now}
}

func (uc *ListAppointments) Execute(ctx context.Context, f domain.Filter) ([]domain.View, error) {
	aps, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(domain.NewViews(aps), uc.now()), nil
}

func (uc *ListAppointments) Grouped(ctx context.Context, f domain.Filter) ([]domain.DateGroup, error) {
	views, err := uc.Execute(ctx, f)
	if err != nil {
		return nil, err
	}
	return domain.GroupByDate(views), nil
}

func (uc *ListAppointments) Stats(ctx context.Context) (domain.Stats, error) {
	aps, err := uc.repo.ListAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(domain.NewViews(aps), uc.now()), nil
}

func (uc *ListAppointments) ForUser(ctx context.Context, userID uuid.UUID, f domain.Filter) ([]domain.View, error) {
	aps, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.Apply(domain.NewViews(aps), uc.now()), nil
}
