package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucAppointment.CreateBooking
	list   *ucAppointment.ListAppointments
	cache  cache.Cache
}

func NewAppointmentHandler(
	create *ucAppointment.CreateBooking,
	list *ucAppointment.ListAppointments,
	c cache.Cache,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		list:   list,
		cache:  c,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "Unauthorized.")
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Missing required fields.")
		return
	}

	in := ucAppointment.CreateBookingInput{
		UserID:     id.UserID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
		ServiceIDs: req.SelectedServices,
		TotalCost:  req.TotalCost,
	}
	if req.TotalDuration != nil {
		minutes, err := dto.Minutes(*req.TotalDuration)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "totalDuration must be a whole number of minutes.")
			return
		}
		in.TotalDuration = &minutes
	}

	view, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, "appointment_create", err)
		return
	}

	// the cached shop embeds appointment ids per service
	invalidateShop(c, h.cache)

	httpresp.Created(c, view)
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	views, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, "appointment_list", err)
		return
	}

	httpresp.Array(c, views)
}

func (h *AppointmentHandler) Grouped(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	groups, err := h.list.Grouped(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, "appointment_grouped", err)
		return
	}

	httpresp.Array(c, groups)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	st, err := h.list.Stats(c.Request.Context())
	if err != nil {
		httperr.Respond(c, "appointment_stats", err)
		return
	}

	httpresp.OK(c, st)
}

func (h *AppointmentHandler) Mine(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "Unauthorized.")
		return
	}

	f, ok := parseFilter(c)
	if !ok {
		return
	}

	views, err := h.list.ForUser(c.Request.Context(), id.UserID, f)
	if err != nil {
		httperr.Respond(c, "appointment_list_mine", err)
		return
	}

	httpresp.Array(c, views)
}

func parseFilter(c *gin.Context) (domain.Filter, bool) {
	f, err := domain.ParseFilter(
		c.Query("search"),
		c.Query("status"),
		c.Query("date"),
		c.Query("service"),
	)
	if err != nil {
		httperr.Respond(c, "appointment_filter", err)
		return domain.Filter{}, false
	}
	return f, true
}
