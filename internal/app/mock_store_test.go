package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// mockStore is a mock implementation of Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListAvailability(ctx context.Context, hostID string) ([]AvailabilityWindow, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AvailabilityWindow), args.Error(1)
}

func (m *mockStore) CreateAvailability(ctx context.Context, w *AvailabilityWindow) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockStore) DeleteAvailability(ctx context.Context, hostID string, windowID int) error {
	args := m.Called(ctx, hostID, windowID)
	return args.Error(0)
}

func (m *mockStore) ListMeetingTypes(ctx context.Context, hostID string) ([]MeetingType, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MeetingType), args.Error(1)
}

func (m *mockStore) GetActiveMeetingType(ctx context.Context, id, hostID string) (*MeetingType, error) {
	args := m.Called(ctx, id, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MeetingType), args.Error(1)
}

func (m *mockStore) CreateMeetingType(ctx context.Context, mt *MeetingType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *mockStore) UpdateMeetingType(ctx context.Context, mt *MeetingType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *mockStore) SetMeetingTypeActive(ctx context.Context, id, hostID string, active bool) error {
	args := m.Called(ctx, id, hostID, active)
	return args.Error(0)
}

func (m *mockStore) DeleteMeetingType(ctx context.Context, id, hostID string) error {
	args := m.Called(ctx, id, hostID)
	return args.Error(0)
}

func (m *mockStore) ListBookingsOverlapping(ctx context.Context, hostID string, from, to time.Time) ([]Booking, error) {
	args := m.Called(ctx, hostID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockStore) ListBookings(ctx context.Context, hostID, tab string, now time.Time) ([]Booking, error) {
	args := m.Called(ctx, hostID, tab, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockStore) GetBooking(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockStore) CancelBooking(ctx context.Context, id, hostID string) error {
	args := m.Called(ctx, id, hostID)
	return args.Error(0)
}

func (m *mockStore) GetHost(ctx context.Context, id string) (*Host, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Host), args.Error(1)
}

func (m *mockStore) UpdateHostName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *mockStore) DashboardStats(ctx context.Context, hostID string, now time.Time) (*DashboardStats, error) {
	args := m.Called(ctx, hostID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DashboardStats), args.Error(1)
}
