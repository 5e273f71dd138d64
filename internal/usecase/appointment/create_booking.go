package appointment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uuid.UUID

	Name  string
	Email string
	Phone string

	Date     string
	TimeSlot string

	ServiceIDs []string

	// optional, stored as sent when present
	TotalCost     *decimal.Decimal
	TotalDuration *int
}

// Notifier queues outgoing mail without blocking.
type Notifier interface {
	Enqueue(m notify.Message) bool
}

type BookingOptions struct {
	PhoneRegion string
	ShopName    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	audit   audit.Recorder
	mail    Notifier
	metrics *metrics.Metrics
	opts    BookingOptions
}

func NewCreateBooking(
	repo domain.Repository,
	audit audit.Recorder,
	mail Notifier,
	m *metrics.Metrics,
	opts BookingOptions,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		audit:   audit,
		mail:    mail,
		metrics: m,
		opts:    opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*domain.View, error) {

	if in.UserID == uuid.Nil {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	slot := strings.TrimSpace(in.TimeSlot)

	if name == "" || email == "" || phone == "" || slot == "" || strings.TrimSpace(in.Date) == "" {
		return nil, uc.reject(httperr.ErrValidation("name, email, phone, date and timeSlot are required"))
	}

	date, err := parseBookingDate(in.Date)
	if err != nil {
		return nil, uc.reject(httperr.ErrValidation("date must be YYYY-MM-DD"))
	}

	ids, err := parseServiceIDs(in.ServiceIDs)
	if err != nil {
		return nil, uc.reject(err)
	}

	if in.TotalDuration != nil && *in.TotalDuration < 0 {
		return nil, uc.reject(httperr.ErrValidation("totalDuration must not be negative"))
	}
	if in.TotalCost != nil && in.TotalCost.IsNegative() {
		return nil, uc.reject(httperr.ErrValidation("totalCost must not be negative"))
	}

	// --------------------------------------------------
	// 2. Services, all or nothing
	// --------------------------------------------------
	services, err := uc.repo.FindServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, uc.reject(httperr.ErrBusiness(httperr.CodeServiceNotFound))
	}

	byID := make(map[uuid.UUID]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	links := make([]models.AppointmentService, 0, len(ids))
	sumPrice := decimal.Zero
	sumDuration := 0
	for _, id := range ids {
		s := byID[id]
		links = append(links, models.AppointmentService{
			ServiceID: s.ID,
			Name:      s.Name,
			Price:     s.Price,
			Duration:  s.Duration,
		})
		sumPrice = sumPrice.Add(s.Price)
		sumDuration += s.Duration
	}

	// --------------------------------------------------
	// 3. Totals
	// --------------------------------------------------
	totalPrice, totalDuration := sumPrice, sumDuration
	if in.TotalCost != nil {
		totalPrice = *in.TotalCost
	}
	if in.TotalDuration != nil {
		totalDuration = *in.TotalDuration
	}
	if !totalPrice.Equal(sumPrice) || totalDuration != sumDuration {
		slog.WarnContext(ctx, "booking totals differ from services",
			"sent_cost", totalPrice.String(),
			"computed_cost", sumPrice.String(),
			"sent_duration", totalDuration,
			"computed_duration", sumDuration,
		)
	}

	// --------------------------------------------------
	// 4. Persist appointment + links
	// --------------------------------------------------
	ap := &models.Appointment{
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: validators.NormalizePhone(phone, uc.opts.PhoneRegion),
		Date:          date,
		Time:          slot,
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
		Status:        string(domain.InitialStatus()),
		UserID:        in.UserID,
		Services:      links,
	}

	if err := uc.repo.CreateWithServices(ctx, ap); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BookingsCreated.Inc()
	}

	// --------------------------------------------------
	// 5. Side effects, never fail the booking
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UserRef(in.UserID),
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: ap.ID.String(),
		Metadata: map[string]any{"services": len(links), "date": in.Date},
	})

	uc.mail.Enqueue(notify.BuildConfirmationEmail(uc.confirmationData(ctx, ap)))

	v := domain.NewView(*ap)
	return &v, nil
}

func (uc *CreateBooking) confirmationData(ctx context.Context, ap *models.Appointment) notify.ConfirmationData {
	data := notify.ConfirmationData{
		ShopName:     uc.opts.ShopName,
		CustomerName: ap.CustomerName,
		Email:        ap.CustomerEmail,
		Date:         ap.Date,
		TimeSlot:     ap.Time,
	}
	if shop, err := uc.repo.GetShop(ctx); err == nil {
		if shop.Name != "" {
			data.ShopName = shop.Name
		}
		data.Location = shop.Location
	}
	return data
}

func (uc *CreateBooking) reject(err error) error {
	if uc.metrics != nil {
		reason := httperr.CodeInternal
		if be, ok := httperr.AsBusiness(err); ok {
			reason = be.Code
		}
		uc.metrics.BookingsRejected.WithLabelValues(reason).Inc()
	}
	return err
}

// parseBookingDate accepts a calendar date or an RFC3339 timestamp, keeping
// the day as written.
func parseBookingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseServiceIDs keeps the first occurrence of each id.
func parseServiceIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, httperr.ErrValidation("selectedServices must not be empty")
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, httperr.ErrValidation("selectedServices contains an invalid id")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
