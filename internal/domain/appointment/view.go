package appointment

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const dateLayout = "2006-01-02"

type ServiceLine struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}

// View is the read model handed to clients. Date is the calendar day only.
type View struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalDuration int             `json:"totalDuration"`
	Status        Status          `json:"status"`
	UserID        uuid.UUID       `json:"userId"`
	ServiceIDs    []uuid.UUID     `json:"serviceIds"`
	Services      []ServiceLine   `json:"services"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func NewView(ap models.Appointment) View {
	v := View{
		ID:            ap.ID,
		CustomerName:  ap.CustomerName,
		CustomerEmail: ap.CustomerEmail,
		CustomerPhone: ap.CustomerPhone,
		Date:          ap.Date.Format(dateLayout),
		Time:          ap.Time,
		TotalPrice:    ap.TotalPrice,
		TotalDuration: ap.TotalDuration,
		Status:        Status(ap.Status),
		UserID:        ap.UserID,
		ServiceIDs:    make([]uuid.UUID, 0, len(ap.Services)),
		Services:      make([]ServiceLine, 0, len(ap.Services)),
		CreatedAt:     ap.CreatedAt,
	}
	for _, s := range ap.Services {
		v.ServiceIDs = append(v.ServiceIDs, s.ServiceID)
		v.Services = append(v.Services, ServiceLine{
			ID:       s.ServiceID,
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.Duration,
		})
	}
	return v
}

func NewViews(aps []models.Appointment) []View {
	out := make([]View, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewView(ap))
	}
	return out
}

type DateBucket string

const (
	BucketAll      DateBucket = "all"
	BucketToday    DateBucket = "today"
	BucketTomorrow DateBucket = "tomorrow"
	BucketThisWeek DateBucket = "thisWeek"
)

// Filter narrows a list of views. The zero value matches everything.
type Filter struct {
	Search    string
	Status    Status
	Date      DateBucket
	ServiceID uuid.UUID
}

// ParseFilter reads the raw query values. "all" and empty mean no filter.
func ParseFilter(search, status, date, service string) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(search)}

	if status = strings.TrimSpace(status); status != "" && !strings.EqualFold(status, "all") {
		s, ok := ParseStatus(status)
		if !ok {
			return Filter{}, httperr.ErrValidation("status must be one of all, pending, completed, cancelled")
		}
		f.Status = s
	}

	switch DateBucket(strings.TrimSpace(date)) {
	case "", BucketAll:
	case BucketToday:
		f.Date = BucketToday
	case BucketTomorrow:
		f.Date = BucketTomorrow
	case BucketThisWeek:
		f.Date = BucketThisWeek
	default:
		return Filter{}, httperr.ErrValidation("date must be one of all, today, tomorrow, thisWeek")
	}

	if service = strings.TrimSpace(service); service != "" && !strings.EqualFold(service, "all") {
		id, err := uuid.Parse(service)
		if err != nil {
			return Filter{}, httperr.ErrValidation("service must be a valid id")
		}
		f.ServiceID = id
	}

	return f, nil
}

// Apply returns the matching views in their original order. The input slice
// is not modified.
func (f Filter) Apply(views []View, now time.Time) []View {
	out := make([]View, 0, len(views))
	from, to := f.dateRange(now)
	search := strings.ToLower(f.Search)

	for _, v := range views {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if from != "" && (v.Date < from || v.Date > to) {
			continue
		}
		if f.ServiceID != uuid.Nil && !hasService(v, f.ServiceID) {
			continue
		}
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// dateRange gives the inclusive calendar range for the bucket.
func (f Filter) dateRange(now time.Time) (string, string) {
	today := civilDay(now)

	switch f.Date {
	case BucketToday:
		d := today.Format(dateLayout)
		return d, d
	case BucketTomorrow:
		d := today.AddDate(0, 0, 1).Format(dateLayout)
		return d, d
	case BucketThisWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return start.Format(dateLayout), start.AddDate(0, 0, 6).Format(dateLayout)
	}
	return "", ""
}

func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func hasService(v View, id uuid.UUID) bool {
	for _, sid := range v.ServiceIDs {
		if sid == id {
			return true
		}
	}
	return false
}

func matchesSearch(v View, needle string) bool {
	if strings.Contains(strings.ToLower(v.CustomerName), needle) ||
		strings.Contains(strings.ToLower(v.CustomerEmail), needle) {
		return true
	}
	for _, s := range v.Services {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return true
		}
	}
	return false
}

type DateGroup struct {
	Date         string `json:"date"`
	Appointments []View `json:"appointments"`
}

// GroupByDate buckets views by calendar day, days ascending and slots
// ascending inside a day. Unparseable slot labels go last in input order.
func GroupByDate(views []View) []DateGroup {
	index := map[string]int{}
	var groups []DateGroup

	for _, v := range views {
		i, ok := index[v.Date]
		if !ok {
			i = len(groups)
			index[v.Date] = i
			groups = append(groups, DateGroup{Date: v.Date})
		}
		groups[i].Appointments = append(groups[i].Appointments, v)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})
	for _, g := range groups {
		sort.SliceStable(g.Appointments, func(i, j int) bool {
			return slotLess(g.Appointments[i].Time, g.Appointments[j].Time)
		})
	}

	if groups == nil {
		groups = []DateGroup{}
	}
	return groups
}

func slotLess(a, b string) bool {
	ma, okA := ParseSlotLabel(a)
	mb, okB := ParseSlotLabel(b)
	switch {
	case okA && okB:
		return ma < mb
	case okA:
		return true
	default:
		return false
	}
}

type Stats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func ComputeStats(views []View, now time.Time) Stats {
	today := civilDay(now).Format(dateLayout)

	st := Stats{Total: len(views)}
	for _, v := range views {
		if v.Date == today {
			st.Today++
		}
		switch v.Status {
		case StatusPending:
			st.Pending++
		case StatusCompleted:
			st.Completed++
		case StatusCancelled:
			st.Cancelled++
		}
	}
	return st
}
