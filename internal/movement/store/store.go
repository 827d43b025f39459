package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielrv/finmov/internal/movement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanMovement reads a movement row from the scanner and returns a populated Movement.
// Expected column order: id, owner_id, description, amount, category, date, notes, created_at, updated_at
func scanMovement(s scanner) (*movement.Movement, error) {
	var m movement.Movement

	var categoryStr string

	var notes sql.NullString

	if err := s.Scan(
		&m.ID, &m.OwnerID, &m.Description, &m.Amount, &categoryStr, &m.Date,
		&notes, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Category = movement.Category(categoryStr)
	m.Notes = notes.String

	return &m, nil
}

const selectMovementColumns = `
	m.id, m.owner_id, m.description, m.amount, m.category, m.date, m.notes, m.created_at, m.updated_at
`

// sortColumns is the ORDER BY allow-list; anything else gets the default sort.
var sortColumns = map[movement.SortField]string{
	movement.SortDate:      "m.date",
	movement.SortAmount:    "m.amount",
	movement.SortCreatedAt: "m.created_at",
}

func (s *Store) CreateMovement(ctx context.Context, m *movement.Movement) error {
	query := `
		INSERT INTO movements (owner_id, description, amount, category, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.OwnerID,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		nullableNotes(m.Notes),
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating movement: %w", err)
	}

	return nil
}

func (s *Store) GetMovement(ctx context.Context, id, ownerID uuid.UUID) (*movement.Movement, error) {
	query := `SELECT ` + selectMovementColumns + `
		FROM movements m
		WHERE m.id = $1 AND m.owner_id = $2`

	m, err := scanMovement(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movement.ErrNotFound
		}

		return nil, fmt.Errorf("getting movement: %w", err)
	}

	return m, nil
}

func (s *Store) ListMovements(ctx context.Context, filter movement.ListFilter) ([]*movement.Movement, error) {
	query := `SELECT ` + selectMovementColumns + `
		FROM movements m
		WHERE m.owner_id = $1`

	args := []any{filter.OwnerID}

	argIdx := 2

	if filter.Category != nil {
		query += fmt.Sprintf(" AND m.category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND m.date >= $%d", argIdx)

		args = append(args, *filter.DateFrom)
		argIdx++
	}

	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND m.date <= $%d", argIdx)

		args = append(args, *filter.DateTo)
		argIdx++
	}

	if col, ok := sortColumns[filter.Sort]; ok {
		dir := "DESC"
		if filter.Order == movement.OrderAsc {
			dir = "ASC"
		}

		query += " ORDER BY " + col + " " + dir
	} else {
		query += " ORDER BY m.date DESC, m.created_at DESC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*movement.Movement

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return movements, nil
}

func (s *Store) UpdateMovement(ctx context.Context, m *movement.Movement) error {
	query := `
		UPDATE movements
		SET description = $1, amount = $2, category = $3, date = $4, notes = $5, updated_at = NOW()
		WHERE id = $6 AND owner_id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		nullableNotes(m.Notes),
		m.ID,
		m.OwnerID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return movement.ErrNotFound
		}

		return fmt.Errorf("updating movement: %w", err)
	}

	return nil
}

func (s *Store) DeleteMovement(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `
		DELETE FROM movements
		WHERE id = $1 AND owner_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting movement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting movement: %w", err)
	}

	if affected == 0 {
		return movement.ErrNotFound
	}

	return nil
}

func nullableNotes(notes string) sql.NullString {
	return sql.NullString{String: notes, Valid: notes != ""}
}
