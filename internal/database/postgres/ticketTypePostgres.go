package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"
)

type ticketTypeRepository struct {
	db *sql.DB
}

func NewTicketTypeRepository(db *sql.DB) database.TicketTypeRepository {
	return &ticketTypeRepository{db: db}
}

func (r *ticketTypeRepository) Create(ctx context.Context, ticketType *entity.TicketType) error {
	query := `
		INSERT INTO ticket_types (event_id, category, price, ticket_limit, dynamic_pricing_rules, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		ticketType.EventID,
		ticketType.Category,
		ticketType.Price,
		ticketType.Limit,
		nullableJSON(ticketType.DynamicPricingRules),
		now,
		now,
	).Scan(&ticketType.ID)

	if err != nil {
		return fmt.Errorf("failed to create ticket type: %w", err)
	}

	ticketType.CreatedAt = now
	ticketType.UpdatedAt = now
	return nil
}

func (r *ticketTypeRepository) GetByID(ctx context.Context, id int64) (*entity.TicketType, error) {
	query := `
		SELECT id, event_id, category, price, ticket_limit, dynamic_pricing_rules, created_at, updated_at
		FROM ticket_types
		WHERE id = $1
	`

	var ticketType entity.TicketType
	var rules sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticketType.ID,
		&ticketType.EventID,
		&ticketType.Category,
		&ticketType.Price,
		&ticketType.Limit,
		&rules,
		&ticketType.CreatedAt,
		&ticketType.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrTicketTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}

	if rules.Valid {
		ticketType.DynamicPricingRules = []byte(rules.String)
	}
	return &ticketType, nil
}

func (r *ticketTypeRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.TicketType, error) {
	query := `
		SELECT id, event_id, category, price, ticket_limit, dynamic_pricing_rules, created_at, updated_at
		FROM ticket_types
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket types: %w", err)
	}
	defer rows.Close()

	var ticketTypes []*entity.TicketType
	for rows.Next() {
		var ticketType entity.TicketType
		var rules sql.NullString
		err := rows.Scan(
			&ticketType.ID,
			&ticketType.EventID,
			&ticketType.Category,
			&ticketType.Price,
			&ticketType.Limit,
			&rules,
			&ticketType.CreatedAt,
			&ticketType.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket type: %w", err)
		}
		if rules.Valid {
			ticketType.DynamicPricingRules = []byte(rules.String)
		}
		ticketTypes = append(ticketTypes, &ticketType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket types: %w", err)
	}

	return ticketTypes, nil
}

func (r *ticketTypeRepository) Update(ctx context.Context, ticketType *entity.TicketType) error {
	query := `
		UPDATE ticket_types
		SET category = $1, price = $2, ticket_limit = $3, dynamic_pricing_rules = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		ticketType.Category,
		ticketType.Price,
		ticketType.Limit,
		nullableJSON(ticketType.DynamicPricingRules),
		time.Now(),
		ticketType.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrTicketTypeNotFound
	}

	return nil
}

func (r *ticketTypeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ticket_types WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrTicketTypeNotFound
	}

	return nil
}

// nullableJSON maps an empty rules blob to SQL NULL.
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
