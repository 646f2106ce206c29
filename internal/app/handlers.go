package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func writeError(c *gin.Context, err error) {
	var ve *ValidationError
	var fe *FetchError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMeetingTypeNotFound),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrHostNotFound),
		errors.Is(err, ErrWindowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &fe):
		c.JSON(http.StatusBadGateway, gin.H{"error": fe.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /api/hosts/:id/availability
// Accepts a list of windows. Several windows per weekday are fine; they
// are stored as given, not merged.
func (a *App) SetAvailabilityHandler(c *gin.Context) {
	hostID := c.Param("id")
	var payload []AvailabilityWindow
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	var saved []AvailabilityWindow
	for i := range payload {
		payload[i].HostID = hostID
		if err := validateWindow(&payload[i]); err != nil {
			writeError(c, err)
			return
		}
		if err := a.Store.CreateAvailability(ctx, &payload[i]); err != nil {
			writeError(c, err)
			return
		}
		saved = append(saved, payload[i])
	}
	c.JSON(http.StatusCreated, saved)
}

func validateWindow(w *AvailabilityWindow) error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return &ValidationError{Field: "day_of_week", Reason: "must be 0..6"}
	}
	start, err := parseHHMM(w.StartTime)
	if err != nil {
		return err
	}
	end, err := parseHHMM(w.EndTime)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	return nil
}

// GET /api/hosts/:id/availability
func (a *App) ListAvailabilityHandler(c *gin.Context) {
	windows, err := a.Store.ListAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// DELETE /api/hosts/:id/availability/:window_id
func (a *App) DeleteAvailabilityHandler(c *gin.Context) {
	var uri struct {
		WindowID int `uri:"window_id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window id"})
		return
	}
	if err := a.Store.DeleteAvailability(c.Request.Context(), c.Param("id"), uri.WindowID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type meetingTypeReq struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Color           string `json:"color,omitempty"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

// POST /api/hosts/:id/meeting-types
func (a *App) CreateMeetingTypeHandler(c *gin.Context) {
	var req meetingTypeReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mt := MeetingType{
		ID:              uuid.NewString(),
		HostID:          c.Param("id"),
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Color:           req.Color,
		IsActive:        true,
	}
	if req.IsActive != nil {
		mt.IsActive = *req.IsActive
	}
	if err := a.Store.CreateMeetingType(c.Request.Context(), &mt); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mt)
}

// GET /api/hosts/:id/meeting-types
func (a *App) ListMeetingTypesHandler(c *gin.Context) {
	types, err := a.Store.ListMeetingTypes(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GET /api/hosts/:id/meeting-types/:type_id
// Public booking-page lookup; only active types resolve.
func (a *App) GetMeetingTypeHandler(c *gin.Context) {
	mt, err := a.Store.GetActiveMeetingType(c.Request.Context(), c.Param("type_id"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mt)
}

// PATCH /api/hosts/:id/meeting-types/:type_id
func (a *App) UpdateMeetingTypeHandler(c *gin.Context) {
	var req meetingTypeReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mt := MeetingType{
		ID:              c.Param("type_id"),
		HostID:          c.Param("id"),
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Color:           req.Color,
		IsActive:        true,
	}
	if req.IsActive != nil {
		mt.IsActive = *req.IsActive
	}
	if err := a.Store.UpdateMeetingType(c.Request.Context(), &mt); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mt)
}

// DELETE /api/hosts/:id/meeting-types/:type_id
func (a *App) DeleteMeetingTypeHandler(c *gin.Context) {
	if err := a.Store.DeleteMeetingType(c.Request.Context(), c.Param("type_id"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/hosts/:id/slots?date=YYYY-MM-DD&meeting_type_id=...
// With an X-Google-Token header, busy intervals from the host's Google
// Calendar are folded into the conflict set.
func (a *App) GetSlotsHandler(c *gin.Context) {
	hostID := c.Param("id")
	dateStr := c.Query("date")
	typeID := c.Query("meeting_type_id")
	if dateStr == "" || typeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and meeting_type_id required"})
		return
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	mt, err := a.Store.GetActiveMeetingType(ctx, typeID, hostID)
	if err != nil {
		writeError(c, err)
		return
	}

	var extraBusy []Slot
	if tokenStr := c.GetHeader("X-Google-Token"); tokenStr != "" {
		extraBusy, err = a.fetchCalendarBusy(ctx, tokenStr, date, date.AddDate(0, 0, 1))
		if err != nil {
			writeError(c, err)
			return
		}
	}

	slots, err := a.ComputeAvailableSlots(ctx, hostID, date, mt.DurationMinutes, extraBusy)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

type createBookingReq struct {
	MeetingTypeID string `json:"meeting_type_id" binding:"required"`
	GuestName     string `json:"guest_name" binding:"required"`
	GuestEmail    string `json:"guest_email" binding:"required,email"`
	StartTimeStr  string `json:"start_time" binding:"required"` // RFC3339
	Notes         string `json:"notes,omitempty"`
}

// POST /api/hosts/:id/bookings
func (a *App) CreateBookingHandler(c *gin.Context) {
	var req createBookingReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTimeStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time"})
		return
	}

	b, err := a.SubmitBooking(c.Request.Context(), c.Param("id"), req.MeetingTypeID, start, GuestInfo{
		Name:  req.GuestName,
		Email: req.GuestEmail,
		Notes: req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /api/hosts/:id/bookings?tab=upcoming|past|all
func (a *App) ListBookingsHandler(c *gin.Context) {
	tab := c.DefaultQuery("tab", TabUpcoming)
	if tab != TabUpcoming && tab != TabPast && tab != TabAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab must be upcoming, past or all"})
		return
	}
	bookings, err := a.Store.ListBookings(c.Request.Context(), c.Param("id"), tab, a.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id
// Public confirmation lookup.
func (a *App) GetBookingHandler(c *gin.Context) {
	b, err := a.Store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/hosts/:id/bookings/:booking_id
func (a *App) CancelBookingHandler(c *gin.Context) {
	if err := a.Store.CancelBooking(c.Request.Context(), c.Param("booking_id"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/hosts/:id/stats
func (a *App) StatsHandler(c *gin.Context) {
	stats, err := a.Store.DashboardStats(c.Request.Context(), c.Param("id"), a.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/hosts/:id/profile
func (a *App) GetProfileHandler(c *gin.Context) {
	h, err := a.Store.GetHost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

// PUT /api/hosts/:id/profile
func (a *App) UpdateProfileHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Store.UpdateHostName(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
