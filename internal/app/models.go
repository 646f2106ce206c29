package app

import "time"

// Booking statuses. Bookings are never hard-deleted; cancellation is a
// status transition so history survives.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// AvailabilityWindow is one recurring weekly window of bookable time.
// StartTime/EndTime are wall-clock "HH:MM" strings. A host may have
// several, possibly non-contiguous windows on the same weekday; they are
// never merged.
type AvailabilityWindow struct {
	ID        int       `json:"id"`
	HostID    string    `json:"host_id"`
	DayOfWeek int       `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type MeetingType struct {
	ID              string    `json:"id"`
	HostID          string    `json:"host_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Color           string    `json:"color,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

type Booking struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Host struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Slot is an ephemeral bookable interval [Start, End). Slots are derived
// per request and never persisted.
type Slot struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// DashboardStats summarizes a host's scheduling activity.
type DashboardStats struct {
	UpcomingBookings int `json:"upcoming_bookings"`
	TotalBookings    int `json:"total_bookings"`
	MeetingTypes     int `json:"meeting_types"`
}
