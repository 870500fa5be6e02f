package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"gatepass/internal/model"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("insufficient capacity")
	// ErrAlreadyProcessed means the conditional confirm matched no PENDING row:
	// the booking is absent, already confirmed, or tied to another order.
	ErrAlreadyProcessed = errors.New("booking not found or already processed")
	// ErrNotScannable means the conditional scan update touched no row; the
	// caller re-reads the booking to tell the rejection cases apart.
	ErrNotScannable = errors.New("booking not scannable")
)

type Repository interface {
	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]model.Event, error)

	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUserContact(ctx context.Context, id int64, fullName, email, phone string) error

	TicketsSold(ctx context.Context, eventID int64) (int, error)
	CreateBookingTx(ctx context.Context, b *model.Booking) (int64, error)
	GetBookingByID(ctx context.Context, id int64) (*model.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID int64, gatewayOrderID, paymentID string) (*model.Booking, error)
	FailBooking(ctx context.Context, bookingID int64, reason string) (bool, error)
	ScanBooking(ctx context.Context, bookingID, eventID, scannerID int64, scannedAt time.Time) (*model.Booking, error)

	EventStats(ctx context.Context, event *model.Event) (*model.EventStats, error)
	RecentConfirmedBookings(ctx context.Context, eventID int64, limit int) ([]model.Booking, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	return r.applyMigrations(migrationsDir, "*.up.sql")
}

func (r *repository) MigrateDown(migrationsDir string) error {
	return r.applyMigrations(migrationsDir, "*.down.sql")
}

func (r *repository) applyMigrations(migrationsDir, pattern string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, pattern))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s (%s)", migrationsDir, pattern)
	return nil
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	query := `
		INSERT INTO events (name, description, start_time, end_time, location, capacity, price_cents, payment_timeout_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	row := r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.StartTime, e.EndTime, e.Location, e.Capacity, e.PriceCents, e.PaymentTimeoutMinutes,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, start_time = $3, end_time = $4, location = $5,
		    capacity = $6, price_cents = $7, payment_timeout_minutes = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.StartTime, e.EndTime, e.Location,
		e.Capacity, e.PriceCents, e.PaymentTimeoutMinutes, e.ID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

const eventColumns = `id, name, description, start_time, end_time, location,
	       capacity, price_cents, payment_timeout_minutes, created_at, updated_at`

func scanEvent(row *sql.Row) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.StartTime, &e.EndTime, &e.Location,
		&e.Capacity, &e.PriceCents, &e.PaymentTimeoutMinutes, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (r *repository) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.StartTime, &e.EndTime, &e.Location,
			&e.Capacity, &e.PriceCents, &e.PaymentTimeoutMinutes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, full_name, email, phone, role, created_at, updated_at
		FROM users WHERE id = $1
	`

	var u model.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// UpdateUserContact overwrites only the details that were actually supplied.
func (r *repository) UpdateUserContact(ctx context.Context, id int64, fullName, email, phone string) error {
	query := `
		UPDATE users
		SET full_name = COALESCE(NULLIF($1, ''), full_name),
		    email     = COALESCE(NULLIF($2, ''), email),
		    phone     = COALESCE(NULLIF($3, ''), phone),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var uid int64
	err := r.db.QueryRowContext(ctx, query, fullName, email, phone, id).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update user contact: %w", err)
	}
	return nil
}

func (r *repository) TicketsSold(ctx context.Context, eventID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(tickets), 0)
		FROM bookings
		WHERE event_id = $1 AND status IN ('PENDING', 'CONFIRMED')
	`

	var sold int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&sold); err != nil {
		return 0, fmt.Errorf("failed to count sold tickets: %w", err)
	}
	return sold, nil
}

// CreateBookingTx inserts a PENDING booking after re-checking capacity with the
// event row locked, so two concurrent bookings cannot both pass a stale sum.
func (r *repository) CreateBookingTx(ctx context.Context, b *model.Booking) (int64, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var capacity int
	err = tx.QueryRowContext(ctx, `
		SELECT capacity
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, b.EventID).Scan(&capacity)
	if err != nil {
		_ = tx.Rollback()
		return 0, ErrEventNotFound
	}

	var sold int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(tickets), 0)
		FROM bookings
		WHERE event_id = $1 AND status IN ('PENDING', 'CONFIRMED')
	`, b.EventID).Scan(&sold)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to count sold tickets: %w", err)
	}

	if sold+b.Tickets > capacity {
		_ = tx.Rollback()
		return 0, ErrCapacityExceeded
	}

	var id int64
	b.Status = model.BookingPending
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (event_id, user_id, tickets, total_cents, status, gateway_order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`, b.EventID, b.UserID, b.Tickets, b.TotalCents, b.Status, b.GatewayOrderID).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

const bookingColumns = `id, event_id, user_id, tickets, total_cents, status,
		       gateway_order_id, payment_id, failure_reason, scanned_at, scanned_by,
		       created_at, updated_at`

func scanBookingRow(scan func(dest ...any) error) (*model.Booking, error) {
	var (
		b         model.Booking
		paymentID sql.NullString
		reason    sql.NullString
		scannedAt sql.NullTime
		scannedBy sql.NullInt64
	)
	if err := scan(
		&b.ID, &b.EventID, &b.UserID, &b.Tickets, &b.TotalCents, &b.Status,
		&b.GatewayOrderID, &paymentID, &reason, &scannedAt, &scannedBy,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.PaymentID = paymentID.String
	b.FailureReason = reason.String
	if scannedAt.Valid {
		t := scannedAt.Time
		b.ScannedAt = &t
	}
	if scannedBy.Valid {
		v := scannedBy.Int64
		b.ScannedBy = &v
	}
	return &b, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBookingRow(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// ConfirmBooking flips a PENDING booking tied to the given gateway order to
// CONFIRMED in a single conditional update. Concurrent or replayed calls see
// no matching row and get ErrAlreadyProcessed.
func (r *repository) ConfirmBooking(ctx context.Context, bookingID int64, gatewayOrderID, paymentID string) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'CONFIRMED', payment_id = $1, updated_at = NOW()
		WHERE id = $2 AND gateway_order_id = $3 AND status = 'PENDING'
		RETURNING ` + bookingColumns

	b, err := scanBookingRow(r.db.Master.QueryRowContext(ctx, query, paymentID, bookingID, gatewayOrderID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlreadyProcessed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	return b, nil
}

// FailBooking marks a still-PENDING booking FAILED. It reports false without
// error when the booking already left PENDING, so expiry and signature-failure
// paths cannot clobber a confirmed booking.
func (r *repository) FailBooking(ctx context.Context, bookingID int64, reason string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'FAILED', failure_reason = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'PENDING'
	`

	res, err := r.db.Master.ExecContext(ctx, query, reason, bookingID)
	if err != nil {
		return false, fmt.Errorf("failed to fail booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// ScanBooking consumes a confirmed ticket exactly once: the update is keyed on
// scanned_at IS NULL, so of any number of concurrent scans exactly one wins.
// ErrNotScannable covers every zero-row outcome; the service re-reads the
// booking to report why.
func (r *repository) ScanBooking(ctx context.Context, bookingID, eventID, scannerID int64, scannedAt time.Time) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET scanned_at = $1, scanned_by = $2, updated_at = NOW()
		WHERE id = $3 AND event_id = $4 AND status = 'CONFIRMED' AND scanned_at IS NULL
		RETURNING ` + bookingColumns

	b, err := scanBookingRow(r.db.Master.QueryRowContext(ctx, query, scannedAt, scannerID, bookingID, eventID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotScannable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return b, nil
}

func (r *repository) EventStats(ctx context.Context, event *model.Event) (*model.EventStats, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status IN ('PENDING', 'CONFIRMED')),
		       COALESCE(SUM(tickets) FILTER (WHERE status IN ('PENDING', 'CONFIRMED')), 0),
		       COUNT(*) FILTER (WHERE status = 'CONFIRMED')
		FROM bookings
		WHERE event_id = $1
	`

	var s model.EventStats
	if err := r.db.QueryRowContext(ctx, query, event.ID).Scan(
		&s.TotalBookings, &s.TotalTickets, &s.ConfirmedBookings,
	); err != nil {
		return nil, fmt.Errorf("failed to compute event stats: %w", err)
	}
	s.AvailableTickets = event.Capacity - s.TotalTickets
	return &s, nil
}

func (r *repository) RecentConfirmedBookings(ctx context.Context, eventID int64, limit int) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE event_id = $1 AND status = 'CONFIRMED'
		ORDER BY updated_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBookingRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}
