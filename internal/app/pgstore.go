package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is the Postgres-backed Store.
type PgStore struct {
	DB *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{DB: db}
}

const uniqueViolation = "23505"

func (s *PgStore) ListAvailability(ctx context.Context, hostID string) ([]AvailabilityWindow, error) {
	q := `SELECT id, host_id, day_of_week, start_time, end_time, created_at
	      FROM availability WHERE host_id=$1 ORDER BY day_of_week, start_time`
	rows, err := s.DB.Query(ctx, q, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AvailabilityWindow
	for rows.Next() {
		var w AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.HostID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *PgStore) CreateAvailability(ctx context.Context, w *AvailabilityWindow) error {
	q := `INSERT INTO availability (host_id, day_of_week, start_time, end_time, created_at)
	      VALUES ($1,$2,$3,$4,$5) RETURNING id`
	now := time.Now().UTC()
	w.CreatedAt = now
	return s.DB.QueryRow(ctx, q, w.HostID, w.DayOfWeek, w.StartTime, w.EndTime, now).Scan(&w.ID)
}

func (s *PgStore) DeleteAvailability(ctx context.Context, hostID string, windowID int) error {
	res, err := s.DB.Exec(ctx, `DELETE FROM availability WHERE id=$1 AND host_id=$2`, windowID, hostID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrWindowNotFound
	}
	return nil
}

func (s *PgStore) ListMeetingTypes(ctx context.Context, hostID string) ([]MeetingType, error) {
	q := `SELECT id, host_id, name, COALESCE(description,''), duration_minutes, color, is_active, created_at, updated_at
	      FROM meeting_types WHERE host_id=$1 ORDER BY created_at`
	rows, err := s.DB.Query(ctx, q, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MeetingType
	for rows.Next() {
		var mt MeetingType
		if err := rows.Scan(&mt.ID, &mt.HostID, &mt.Name, &mt.Description,
			&mt.DurationMinutes, &mt.Color, &mt.IsActive, &mt.CreatedAt, &mt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, rows.Err()
}

func (s *PgStore) GetActiveMeetingType(ctx context.Context, id, hostID string) (*MeetingType, error) {
	q := `SELECT id, host_id, name, COALESCE(description,''), duration_minutes, color, is_active, created_at, updated_at
	      FROM meeting_types WHERE id=$1 AND host_id=$2 AND is_active`
	var mt MeetingType
	err := s.DB.QueryRow(ctx, q, id, hostID).Scan(&mt.ID, &mt.HostID, &mt.Name, &mt.Description,
		&mt.DurationMinutes, &mt.Color, &mt.IsActive, &mt.CreatedAt, &mt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMeetingTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

func (s *PgStore) CreateMeetingType(ctx context.Context, mt *MeetingType) error {
	q := `INSERT INTO meeting_types (id, host_id, name, description, duration_minutes, color, is_active, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)`
	now := time.Now().UTC()
	mt.CreatedAt = now
	mt.UpdatedAt = now
	_, err := s.DB.Exec(ctx, q, mt.ID, mt.HostID, mt.Name, mt.Description,
		mt.DurationMinutes, mt.Color, mt.IsActive, now)
	return err
}

func (s *PgStore) UpdateMeetingType(ctx context.Context, mt *MeetingType) error {
	q := `UPDATE meeting_types
	      SET name=$1, description=$2, duration_minutes=$3, color=$4, is_active=$5, updated_at=$6
	      WHERE id=$7 AND host_id=$8`
	now := time.Now().UTC()
	res, err := s.DB.Exec(ctx, q, mt.Name, mt.Description, mt.DurationMinutes,
		mt.Color, mt.IsActive, now, mt.ID, mt.HostID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrMeetingTypeNotFound
	}
	mt.UpdatedAt = now
	return nil
}

func (s *PgStore) SetMeetingTypeActive(ctx context.Context, id, hostID string, active bool) error {
	q := `UPDATE meeting_types SET is_active=$1, updated_at=$2 WHERE id=$3 AND host_id=$4`
	res, err := s.DB.Exec(ctx, q, active, time.Now().UTC(), id, hostID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrMeetingTypeNotFound
	}
	return nil
}

func (s *PgStore) DeleteMeetingType(ctx context.Context, id, hostID string) error {
	res, err := s.DB.Exec(ctx, `DELETE FROM meeting_types WHERE id=$1 AND host_id=$2`, id, hostID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrMeetingTypeNotFound
	}
	return nil
}

func (s *PgStore) ListBookingsOverlapping(ctx context.Context, hostID string, from, to time.Time) ([]Booking, error) {
	// Interval-overlap predicate rather than day-bounded columns, so a
	// booking spanning midnight into the range is included.
	q := `SELECT id, host_id, guest_name, guest_email, title, COALESCE(description,''), start_time, end_time, status, created_at
	      FROM bookings
	      WHERE host_id=$1 AND start_time < $3 AND end_time > $2 AND status <> 'cancelled'
	      ORDER BY start_time`
	rows, err := s.DB.Query(ctx, q, hostID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (s *PgStore) ListBookings(ctx context.Context, hostID, tab string, now time.Time) ([]Booking, error) {
	var (
		rows pgx.Rows
		err  error
	)
	base := `SELECT id, host_id, guest_name, guest_email, title, COALESCE(description,''), start_time, end_time, status, created_at
	         FROM bookings WHERE host_id=$1`
	switch tab {
	case TabUpcoming:
		rows, err = s.DB.Query(ctx, base+` AND start_time >= $2 ORDER BY start_time`, hostID, now)
	case TabPast:
		rows, err = s.DB.Query(ctx, base+` AND start_time < $2 ORDER BY start_time DESC`, hostID, now)
	default:
		rows, err = s.DB.Query(ctx, base+` ORDER BY start_time DESC`, hostID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (s *PgStore) GetBooking(ctx context.Context, id string) (*Booking, error) {
	q := `SELECT id, host_id, guest_name, guest_email, title, COALESCE(description,''), start_time, end_time, status, created_at
	      FROM bookings WHERE id=$1`
	var b Booking
	err := s.DB.QueryRow(ctx, q, id).Scan(&b.ID, &b.HostID, &b.GuestName, &b.GuestEmail,
		&b.Title, &b.Description, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PgStore) CreateBooking(ctx context.Context, b *Booking) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock any overlapping non-cancelled booking; a concurrent commit for
	// the same interval serializes here.
	checkQ := `SELECT id FROM bookings
	           WHERE host_id=$1 AND start_time < $3 AND end_time > $2 AND status <> 'cancelled'
	           FOR UPDATE`
	var existingID string
	err = tx.QueryRow(ctx, checkQ, b.HostID, b.StartTime, b.EndTime).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existingID != "" {
		return ErrSlotTaken
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	insertQ := `INSERT INTO bookings
	            (id, host_id, guest_name, guest_email, title, description, start_time, end_time, status, created_at)
	            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err = tx.Exec(ctx, insertQ, b.ID, b.HostID, b.GuestName, b.GuestEmail,
		b.Title, b.Description, b.StartTime, b.EndTime, b.Status, now)
	if err != nil {
		// The partial unique index over (host_id, start_time, end_time)
		// among non-cancelled bookings is the last line of defense.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *PgStore) CancelBooking(ctx context.Context, id, hostID string) error {
	q := `UPDATE bookings SET status='cancelled' WHERE id=$1 AND host_id=$2 AND status <> 'cancelled'`
	res, err := s.DB.Exec(ctx, q, id, hostID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *PgStore) GetHost(ctx context.Context, id string) (*Host, error) {
	q := `SELECT id, email, COALESCE(name,''), created_at, updated_at FROM hosts WHERE id=$1`
	var h Host
	err := s.DB.QueryRow(ctx, q, id).Scan(&h.ID, &h.Email, &h.Name, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *PgStore) UpdateHostName(ctx context.Context, id, name string) error {
	res, err := s.DB.Exec(ctx, `UPDATE hosts SET name=$1, updated_at=$2 WHERE id=$3`, name, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrHostNotFound
	}
	return nil
}

func (s *PgStore) DashboardStats(ctx context.Context, hostID string, now time.Time) (*DashboardStats, error) {
	q := `SELECT
	        (SELECT COUNT(*) FROM bookings WHERE host_id=$1 AND start_time >= $2 AND status <> 'cancelled'),
	        (SELECT COUNT(*) FROM bookings WHERE host_id=$1),
	        (SELECT COUNT(*) FROM meeting_types WHERE host_id=$1)`
	var st DashboardStats
	if err := s.DB.QueryRow(ctx, q, hostID, now).Scan(&st.UpcomingBookings, &st.TotalBookings, &st.MeetingTypes); err != nil {
		return nil, err
	}
	return &st, nil
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.HostID, &b.GuestName, &b.GuestEmail,
			&b.Title, &b.Description, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
