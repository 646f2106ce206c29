package app

import (
	"context"
	"fmt"
	"sort"
	"time"
)

const (
	// SlotStepMinutes is the spacing between successive candidate slot
	// starts. Independent of meeting duration: when duration > step,
	// candidates overlap each other, which maximizes guest choice.
	SlotStepMinutes = 15

	// LookaheadDays is how far into the future a date may be booked.
	LookaheadDays = 60
)

// GenerateCandidateSlots enumerates every fixed-duration slot inside the
// windows matching date's weekday, ignoring existing bookings. For each
// window the cursor starts at date+StartTime and advances by the step
// while cursor+duration still fits before date+EndTime. The result is
// sorted by start time.
func GenerateCandidateSlots(date time.Time, durationMinutes int, windows []AvailabilityWindow) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}

	year, month, day := date.Date()
	loc := date.Location()
	dur := time.Duration(durationMinutes) * time.Minute
	step := SlotStepMinutes * time.Minute

	var slots []Slot
	for _, w := range windows {
		if w.DayOfWeek != int(date.Weekday()) {
			continue
		}
		startTOD, err := parseHHMM(w.StartTime)
		if err != nil {
			return nil, err
		}
		endTOD, err := parseHHMM(w.EndTime)
		if err != nil {
			return nil, err
		}
		if !endTOD.After(startTOD) {
			return nil, &ValidationError{
				Field:  "end_time",
				Reason: fmt.Sprintf("must be after start_time for window %d", w.ID),
			}
		}

		winStart := time.Date(year, month, day, startTOD.Hour(), startTOD.Minute(), 0, 0, loc)
		winEnd := time.Date(year, month, day, endTOD.Hour(), endTOD.Minute(), 0, 0, loc)

		for cur := winStart; !cur.Add(dur).After(winEnd); cur = cur.Add(step) {
			slots = append(slots, Slot{Start: cur, End: cur.Add(dur)})
		}
	}

	// Windows arrive in host-defined order and may interleave; downstream
	// filtering and presentation assume chronological order.
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, nil
}

// overlaps reports whether [s1,e1) and [s2,e2) intersect. Half-open
// semantics: intervals that only touch at a boundary do not overlap.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FilterConflicts drops every candidate that overlaps at least one busy
// interval, preserving input order.
func FilterConflicts(candidates []Slot, busy []Slot) []Slot {
	out := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		conflict := false
		for _, b := range busy {
			if overlaps(c.Start, c.End, b.Start, b.End) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, c)
		}
	}
	return out
}

// ComputeAvailableSlots resolves the bookable slots for one host and date.
// Dates in the past, dates beyond the lookahead horizon and dates with no
// matching weekly window all yield an empty list without a bookings query.
// extraBusy carries busy intervals from outside the store, e.g. a connected
// external calendar.
func (a *App) ComputeAvailableSlots(ctx context.Context, hostID string, date time.Time, durationMinutes int, extraBusy []Slot) ([]Slot, error) {
	now := a.now()
	day := startOfDay(date)

	// Same gates apply wherever slots are computed, so a stale client
	// cannot present an out-of-range date the server would accept.
	if day.Before(startOfDay(now)) || day.After(now.AddDate(0, 0, LookaheadDays)) {
		return []Slot{}, nil
	}

	windows, err := a.Store.ListAvailability(ctx, hostID)
	if err != nil {
		return nil, fetchErr("availability", err)
	}

	var matching []AvailabilityWindow
	for _, w := range windows {
		if w.DayOfWeek == int(day.Weekday()) {
			matching = append(matching, w)
		}
	}
	if len(matching) == 0 {
		return []Slot{}, nil
	}

	candidates, err := GenerateCandidateSlots(day, durationMinutes, matching)
	if err != nil {
		return nil, err
	}
	// No booking into the past on the current day.
	if day.Equal(startOfDay(now)) {
		future := candidates[:0]
		for _, c := range candidates {
			if !c.Start.Before(now) {
				future = append(future, c)
			}
		}
		candidates = future
	}
	if len(candidates) == 0 {
		return []Slot{}, nil
	}

	// Fetch by interval overlap rather than day-bounded columns so a
	// booking spanning midnight into this day is not missed. A failed
	// fetch aborts the computation; it is never an empty conflict set.
	bookings, err := a.Store.ListBookingsOverlapping(ctx, hostID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fetchErr("bookings", err)
	}

	busy := make([]Slot, 0, len(bookings)+len(extraBusy))
	for _, b := range bookings {
		busy = append(busy, Slot{Start: b.StartTime, End: b.EndTime})
	}
	busy = append(busy, extraBusy...)

	return FilterConflicts(candidates, busy), nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func parseHHMM(s string) (time.Time, error) {
	// Accept "09:00:00" from the store by taking the first 5 chars.
	if len(s) < 5 {
		return time.Time{}, &ValidationError{Field: "time", Reason: fmt.Sprintf("invalid value %q", s)}
	}
	tt, err := time.Parse("15:04", s[:5])
	if err != nil {
		return time.Time{}, &ValidationError{Field: "time", Reason: fmt.Sprintf("invalid value %q", s)}
	}
	return tt, nil
}
