package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	hostID := "host-1"
	typeID := "mt-1"

	meetingType := &MeetingType{
		ID: typeID, HostID: hostID, Name: "Intro Call",
		DurationMinutes: 30, IsActive: true,
	}
	windows := []AvailabilityWindow{{ID: 1, HostID: hostID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}}
	guest := GuestInfo{Name: "Ada", Email: "ada@example.com", Notes: "see you there"}

	newApp := func(store *mockStore) *App {
		return &App{Store: store, Clock: func() time.Time { return now }}
	}

	t.Run("rejects empty contact fields before any store access", func(t *testing.T) {
		store := new(mockStore)
		a := newApp(store)

		_, err := a.SubmitBooking(ctx, hostID, typeID, at(t, 9, 0), GuestInfo{Name: " ", Email: "a@b.c"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)

		_, err = a.SubmitBooking(ctx, hostID, typeID, at(t, 9, 0), GuestInfo{Name: "Ada", Email: ""})
		require.ErrorAs(t, err, &ve)

		store.AssertNotCalled(t, "GetActiveMeetingType")
	})

	t.Run("inactive or missing meeting type is terminal", func(t *testing.T) {
		store := new(mockStore)
		a := newApp(store)
		store.On("GetActiveMeetingType", ctx, typeID, hostID).Return(nil, ErrMeetingTypeNotFound)

		_, err := a.SubmitBooking(ctx, hostID, typeID, at(t, 9, 0), guest)
		assert.ErrorIs(t, err, ErrMeetingTypeNotFound)
		store.AssertNotCalled(t, "CreateBooking")
	})

	t.Run("commits a confirmed booking for a free slot", func(t *testing.T) {
		store := new(mockStore)
		a := newApp(store)
		start := at(t, 9, 0)

		store.On("GetActiveMeetingType", ctx, typeID, hostID).Return(meetingType, nil)
		store.On("ListAvailability", ctx, hostID).Return(windows, nil)
		store.On("ListBookingsOverlapping", ctx, hostID, monday, monday.AddDate(0, 0, 1)).Return([]Booking{}, nil)
		store.On("CreateBooking", ctx, mock.AnythingOfType("*app.Booking")).Return(nil)

		b, err := a.SubmitBooking(ctx, hostID, typeID, start, guest)
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, hostID, b.HostID)
		assert.Equal(t, "Intro Call", b.Title)
		assert.Equal(t, "Ada", b.GuestName)
		assert.Equal(t, "see you there", b.Description)
		assert.Equal(t, start, b.StartTime)
		assert.Equal(t, start.Add(30*time.Minute), b.EndTime)
		assert.Equal(t, StatusConfirmed, b.Status)
		store.AssertExpectations(t)
	})

	t.Run("slot conflicting with an existing booking is rejected", func(t *testing.T) {
		store := new(mockStore)
		a := newApp(store)
		existing := []Booking{{
			ID: "b1", HostID: hostID, Status: StatusConfirmed,
			StartTime: at(t, 9, 0), EndTime: at(t, 9, 30),
		}}

		store.On("GetActiveMeetingType", ctx, typeID, hostID).Return(meetingType, nil)
		store.On("ListAvailability", ctx, hostID).Return(windows, nil)
		store.On("ListBookingsOverlapping", ctx, hostID, monday, monday.AddDate(0, 0, 1)).Return(existing, nil)

		_, err := a.SubmitBooking(ctx, hostID, typeID, at(t, 9, 15), guest)
		assert.ErrorIs(t, err, ErrSlotTaken)
		store.AssertNotCalled(t, "CreateBooking")
	})

	t.Run("slot outside any availability window is rejected", func(t *testing.T) {
		store := new(mockStore)
		a := newApp(store)

		store.On("GetActiveMeetingType", ctx, typeID, hostID).Return(meetingType, nil)
		store.On("ListAvailability", ctx, hostID).Return(windows, nil)
		store.On("ListBookingsOverlapping", ctx, hostID, monday, monday.AddDate(0, 0, 1)).Return([]Booking{}, nil)

		_, err := a.SubmitBooking(ctx, hostID, typeID, at(t, 7, 0), guest)
		assert.ErrorIs(t, err, ErrSlotTaken)
		store.AssertNotCalled(t, "CreateBooking")
	})

	t.Run("exactly one of two racing commits wins", func(t *testing.T) {
		// The slot list both guests saw is identical; the store's
		// uniqueness guarantee decides the race at commit time.
		store := new(mockStore)
		a := newApp(store)
		start := at(t, 10, 0)

		store.On("GetActiveMeetingType", ctx, typeID, hostID).Return(meetingType, nil)
		store.On("ListAvailability", ctx, hostID).Return(windows, nil)
		store.On("ListBookingsOverlapping", ctx, hostID, monday, monday.AddDate(0, 0, 1)).Return([]Booking{}, nil)
		store.On("CreateBooking", ctx, mock.AnythingOfType("*app.Booking")).Return(nil).Once()
		store.On("CreateBooking", ctx, mock.AnythingOfType("*app.Booking")).Return(ErrSlotTaken).Once()

		first, err := a.SubmitBooking(ctx, hostID, typeID, start, guest)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := a.SubmitBooking(ctx, hostID, typeID, start, GuestInfo{Name: "Bob", Email: "bob@example.com"})
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Nil(t, second)

		store.AssertExpectations(t)
	})

	t.Run("dates outside the booking horizon cannot be committed", func(t *testing.T) {
		store := new(mockStore)
		a := newApp(store)
		store.On("GetActiveMeetingType", ctx, typeID, hostID).Return(meetingType, nil)

		_, err := a.SubmitBooking(ctx, hostID, typeID, now.AddDate(0, 0, -7), guest)
		assert.ErrorIs(t, err, ErrSlotTaken)
		store.AssertNotCalled(t, "CreateBooking")
	})
}
