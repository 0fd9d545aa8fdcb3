package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) database.BookingRepository {
	return &bookingRepository{db: db}
}

// Create admits a booking inside a single transaction. The event row is
// locked FOR UPDATE first, which serializes all admissions for that event
// and therefore protects both the per-type limit and the event capacity
// against concurrent check-then-insert races.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the event row for the duration of the admission.
	var capacity int
	query := `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, booking.EventID).Scan(&capacity)
	if err == sql.ErrNoRows {
		return entity.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock event: %w", err)
	}

	var limit int
	query = `SELECT ticket_limit FROM ticket_types WHERE id = $1 AND event_id = $2`
	err = tx.QueryRowContext(ctx, query, booking.TicketTypeID, booking.EventID).Scan(&limit)
	if err == sql.ErrNoRows {
		return entity.ErrTicketTypeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get ticket type limit: %w", err)
	}

	var typeBooked int
	query = `SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE ticket_type_id = $1 AND status = 'booked'`
	if err := tx.QueryRowContext(ctx, query, booking.TicketTypeID).Scan(&typeBooked); err != nil {
		return fmt.Errorf("failed to sum booked units for ticket type: %w", err)
	}

	if booking.Quantity > limit-typeBooked {
		return &entity.CapacityError{Scope: entity.CapacityScopeTicketType, Remaining: limit - typeBooked}
	}

	var eventBooked int
	query = `SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE event_id = $1 AND status = 'booked'`
	if err := tx.QueryRowContext(ctx, query, booking.EventID).Scan(&eventBooked); err != nil {
		return fmt.Errorf("failed to sum booked units for event: %w", err)
	}

	if booking.Quantity > capacity-eventBooked {
		return &entity.CapacityError{Scope: entity.CapacityScopeEvent, Remaining: capacity - eventBooked}
	}

	query = `
		INSERT INTO bookings (booked_by, event_id, ticket_type_id, quantity, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		booking.BookedBy,
		booking.EventID,
		booking.TicketTypeID,
		booking.Quantity,
		booking.TotalPrice,
		booking.Status,
		now,
	).Scan(&booking.ID)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `
		SELECT id, booked_by, event_id, ticket_type_id, quantity, total_price, status, created_at
		FROM bookings
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*entity.Booking, error) {
	query := `
		SELECT id, booked_by, event_id, ticket_type_id, quantity, total_price, status, created_at
		FROM bookings
		WHERE id = $1 AND booked_by = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *bookingRepository) scanOne(row *sql.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookedBy,
		&booking.EventID,
		&booking.TicketTypeID,
		&booking.Quantity,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	query := `
		SELECT id, booked_by, event_id, ticket_type_id, quantity, total_price, status, created_at
		FROM bookings
		WHERE booked_by = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryMany(ctx, query, userID)
}

func (r *bookingRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.Booking, error) {
	query := `
		SELECT id, booked_by, event_id, ticket_type_id, quantity, total_price, status, created_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryMany(ctx, query, eventID)
}

func (r *bookingRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookedBy,
			&booking.EventID,
			&booking.TicketTypeID,
			&booking.Quantity,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) BookedUnits(ctx context.Context, ticketTypeID int64) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE ticket_type_id = $1 AND status = 'booked'`
	var sum int
	if err := r.db.QueryRowContext(ctx, query, ticketTypeID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum booked units for ticket type: %w", err)
	}
	return sum, nil
}

func (r *bookingRepository) EventBookedUnits(ctx context.Context, eventID int64) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE event_id = $1 AND status = 'booked'`
	var sum int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum booked units for event: %w", err)
	}
	return sum, nil
}

func (r *bookingRepository) CountByTicketType(ctx context.Context, ticketTypeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ticket_type_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, ticketTypeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings by ticket type: %w", err)
	}
	return count, nil
}
