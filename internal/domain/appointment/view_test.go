package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	fadeID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	beardID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// Wednesday, 2023-06-14 in the shop's zone.
var now = time.Date(2023, 6, 14, 9, 0, 0, 0, time.FixedZone("EDT", -4*3600))

func view(name, date, slot string, status Status, services ...uuid.UUID) View {
	v := View{
		ID:            uuid.New(),
		CustomerName:  name,
		CustomerEmail: name + "@mail.test",
		Date:          date,
		Time:          slot,
		Status:        status,
	}
	for _, id := range services {
		n := "Fade"
		if id == beardID {
			n = "Beard Trim"
		}
		v.ServiceIDs = append(v.ServiceIDs, id)
		v.Services = append(v.Services, ServiceLine{ID: id, Name: n})
	}
	return v
}

func fixtures() []View {
	return []View{
		view("Ann", "2023-06-14", "10:00 AM", StatusPending, fadeID),
		view("Bob", "2023-06-15", "9:00 AM", StatusCompleted, beardID),
		view("Cid", "2023-06-17", "1:00 PM", StatusCancelled, fadeID, beardID),
		view("Dee", "2023-06-18", "11:00 AM", StatusPending),
		view("Eve", "2023-06-10", "11:00 AM", StatusPending, fadeID),
	}
}

func names(views []View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.CustomerName)
	}
	return out
}

func TestNewView(t *testing.T) {
	ap := models.Appointment{
		CustomerName:  "Ann",
		Date:          time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC),
		Time:          "10:30 AM",
		TotalPrice:    decimal.RequireFromString("45.5"),
		TotalDuration: 50,
		Status:        "pending",
		Services: []models.AppointmentService{
			{ServiceID: fadeID, Name: "Fade", Price: decimal.NewFromInt(30), Duration: 30},
			{ServiceID: beardID, Name: "Beard Trim", Price: decimal.NewFromInt(15), Duration: 20},
		},
	}

	v := NewView(ap)

	assert.Equal(t, "2023-06-16", v.Date)
	assert.Equal(t, StatusPending, v.Status)
	assert.Equal(t, []uuid.UUID{fadeID, beardID}, v.ServiceIDs)
	assert.Equal(t, "Beard Trim", v.Services[1].Name)
	assert.True(t, v.TotalPrice.Equal(decimal.RequireFromString("45.50")))

	empty := NewView(models.Appointment{})
	assert.NotNil(t, empty.ServiceIDs)
	assert.NotNil(t, empty.Services)
}

func TestFilterZeroValueMatchesAll(t *testing.T) {
	in := fixtures()
	assert.Equal(t, names(in), names(Filter{}.Apply(in, now)))
}

func TestFilterApply(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"search by customer", Filter{Search: "bo"}, []string{"Bob"}},
		{"search by email", Filter{Search: "EVE@MAIL"}, []string{"Eve"}},
		{"search by service name", Filter{Search: "beard"}, []string{"Bob", "Cid"}},
		{"status", Filter{Status: StatusPending}, []string{"Ann", "Dee", "Eve"}},
		{"today", Filter{Date: BucketToday}, []string{"Ann"}},
		{"tomorrow", Filter{Date: BucketTomorrow}, []string{"Bob"}},
		{"this week sunday to saturday", Filter{Date: BucketThisWeek}, []string{"Ann", "Bob", "Cid"}},
		{"service", Filter{ServiceID: fadeID}, []string{"Ann", "Cid", "Eve"}},
		{"combined", Filter{Status: StatusPending, ServiceID: fadeID, Date: BucketThisWeek}, []string{"Ann"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(tc.filter.Apply(fixtures(), now)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := fixtures()
	before := names(in)

	out := Filter{Status: StatusCancelled}.Apply(in, now)
	require.Len(t, out, 1)
	out[0].CustomerName = "changed"

	assert.Equal(t, before, names(in))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" ann ", "all", "all", "")
	require.NoError(t, err)
	assert.Equal(t, Filter{Search: "ann"}, f)

	f, err = ParseFilter("", "Pending", "thisWeek", fadeID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, f.Status)
	assert.Equal(t, BucketThisWeek, f.Date)
	assert.Equal(t, fadeID, f.ServiceID)

	_, err = ParseFilter("", "done", "", "")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))

	_, err = ParseFilter("", "", "nextYear", "")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))

	_, err = ParseFilter("", "", "", "not-a-uuid")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))
}

func TestGroupByDate(t *testing.T) {
	in := []View{
		view("late", "2023-06-16", "2:00 PM", StatusPending),
		view("junk", "2023-06-16", "whenever", StatusPending),
		view("early", "2023-06-16", "9:30 AM", StatusPending),
		view("first", "2023-06-15", "11:00 AM", StatusPending),
		view("noon", "2023-06-16", "12:00 PM", StatusPending),
		view("last", "2023-06-17", "10:00", StatusPending),
	}

	groups := GroupByDate(in)

	require.Len(t, groups, 3)
	assert.Equal(t, "2023-06-15", groups[0].Date)
	assert.Equal(t, "2023-06-16", groups[1].Date)
	assert.Equal(t, "2023-06-17", groups[2].Date)
	assert.Equal(t, []string{"early", "noon", "late", "junk"}, names(groups[1].Appointments))

	assert.Equal(t, "late", in[0].CustomerName, "input order is kept")
	assert.Empty(t, GroupByDate(nil))
	assert.NotNil(t, GroupByDate(nil))
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(fixtures(), now)
	assert.Equal(t, Stats{Total: 5, Today: 1, Pending: 3, Completed: 1, Cancelled: 1}, st)
}
