package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GuestInfo is the contact block a guest submits with a booking.
type GuestInfo struct {
	Name  string
	Email string
	Notes string
}

// SubmitBooking turns a guest-chosen slot into a confirmed booking. The
// slot list the guest saw is stale by the time the form arrives, so the
// slot is re-validated against current bookings here, and the store's
// uniqueness guarantee settles any race that slips through: of two
// concurrent commits for an overlapping slot exactly one succeeds, the
// other gets ErrSlotTaken.
func (a *App) SubmitBooking(ctx context.Context, hostID, meetingTypeID string, start time.Time, guest GuestInfo) (*Booking, error) {
	if strings.TrimSpace(guest.Name) == "" {
		return nil, &ValidationError{Field: "guest_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(guest.Email) == "" {
		return nil, &ValidationError{Field: "guest_email", Reason: "must not be empty"}
	}

	mt, err := a.Store.GetActiveMeetingType(ctx, meetingTypeID, hostID)
	if err != nil {
		return nil, err
	}

	// End time is fixed at creation from the meeting type's current
	// duration; later duration edits never touch existing bookings.
	end := start.Add(time.Duration(mt.DurationMinutes) * time.Minute)

	available, err := a.ComputeAvailableSlots(ctx, hostID, start, mt.DurationMinutes, nil)
	if err != nil {
		return nil, err
	}
	found := false
	for _, s := range available {
		if s.Start.Equal(start) && s.End.Equal(end) {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSlotTaken
	}

	b := &Booking{
		ID:          uuid.NewString(),
		HostID:      hostID,
		GuestName:   guest.Name,
		GuestEmail:  guest.Email,
		Title:       mt.Name,
		Description: guest.Notes,
		StartTime:   start,
		EndTime:     end,
		Status:      StatusConfirmed,
	}
	if err := a.Store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
