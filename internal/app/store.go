package app

import (
	"context"
	"time"
)

// Booking list tabs, mirroring the host dashboard filter.
const (
	TabUpcoming = "upcoming"
	TabPast     = "past"
	TabAll      = "all"
)

// Store is the persistence boundary. The engine only depends on this
// interface; the pgx implementation lives in pgstore.go.
type Store interface {
	ListAvailability(ctx context.Context, hostID string) ([]AvailabilityWindow, error)
	CreateAvailability(ctx context.Context, w *AvailabilityWindow) error
	DeleteAvailability(ctx context.Context, hostID string, windowID int) error

	ListMeetingTypes(ctx context.Context, hostID string) ([]MeetingType, error)
	GetActiveMeetingType(ctx context.Context, id, hostID string) (*MeetingType, error)
	CreateMeetingType(ctx context.Context, mt *MeetingType) error
	UpdateMeetingType(ctx context.Context, mt *MeetingType) error
	SetMeetingTypeActive(ctx context.Context, id, hostID string, active bool) error
	DeleteMeetingType(ctx context.Context, id, hostID string) error

	// ListBookingsOverlapping returns non-cancelled bookings whose
	// [start,end) interval overlaps [from,to).
	ListBookingsOverlapping(ctx context.Context, hostID string, from, to time.Time) ([]Booking, error)
	ListBookings(ctx context.Context, hostID, tab string, now time.Time) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	// CreateBooking persists b with exactly-once semantics for a given
	// (host, start, end) among non-cancelled bookings: the loser of a
	// concurrent commit gets ErrSlotTaken.
	CreateBooking(ctx context.Context, b *Booking) error
	CancelBooking(ctx context.Context, id, hostID string) error

	GetHost(ctx context.Context, id string) (*Host, error)
	UpdateHostName(ctx context.Context, id, name string) error
	DashboardStats(ctx context.Context, hostID string, now time.Time) (*DashboardStats, error)
}

// App carries the service dependencies; handlers and the engine hang off it.
type App struct {
	Store Store

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}
