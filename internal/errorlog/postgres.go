package errorlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"preflight/internal/records"
	"preflight/pkg/platform/sentinel"
	"preflight/pkg/platform/tx"
)

// Postgres persists error rows. All operations join an in-flight
// transaction when ctx carries one, so the remediation service's resolution
// stamps commit or roll back with the record mutation they describe.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const errorColumns = `
	id, run_id, error_source, file_type, error_code, severity,
	COALESCE(field_name, ''), COALESCE(record_identifier, ''),
	COALESCE(item_type, ''), COALESCE(item_id, 0),
	error_message, COALESCE(submitted_value, ''), COALESCE(expected_format, ''),
	COALESCE(resolution_guidance, ''),
	resolution_status, COALESCE(resolution_notes, ''), COALESCE(resolution_action, ''),
	COALESCE(resolved_by, ''), resolved_at,
	is_auto_fixable, COALESCE(auto_fix_function, ''), auto_fix_attempted, auto_fix_success,
	created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, e *Error) error {
	q := tx.QuerierFrom(ctx, s.db)

	if e.ResolutionStatus == "" {
		e.ResolutionStatus = StatusPending
	}
	if e.Source == "" {
		e.Source = SourcePreValidation
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO validation_errors (
			run_id, error_source, file_type, error_code, severity,
			field_name, record_identifier, item_type, item_id,
			error_message, submitted_value, expected_format, resolution_guidance,
			resolution_status, is_auto_fixable, auto_fix_function,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		e.RunID, e.Source, e.FileType, e.Code, e.Severity,
		e.FieldName, e.RecordIdentifier, string(e.ItemType), e.ItemID,
		e.Message, e.SubmittedValue, e.ExpectedFormat, e.ResolutionGuidance,
		e.ResolutionStatus, e.AutoFixable, e.FixFunction,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create error row: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*Error, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `SELECT`+errorColumns+` FROM validation_errors WHERE id = $1`, id)
	e, err := scanError(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find error row: %w", err)
	}
	return e, nil
}

func (s *Postgres) ListByRun(ctx context.Context, runID string) ([]*Error, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `SELECT`+errorColumns+`
		FROM validation_errors WHERE run_id = $1 ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list errors by run: %w", err)
	}
	defer rows.Close()
	return collectErrors(rows)
}

func (s *Postgres) ListByStatus(ctx context.Context, status ResolutionStatus) ([]*Error, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `SELECT`+errorColumns+`
		FROM validation_errors WHERE resolution_status = $1 ORDER BY id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list errors by status: %w", err)
	}
	defer rows.Close()
	return collectErrors(rows)
}

func (s *Postgres) ListByRecord(ctx context.Context, itemType records.EntityType, itemID int64) ([]*Error, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `SELECT`+errorColumns+`
		FROM validation_errors WHERE item_type = $1 AND item_id = $2 ORDER BY id`, string(itemType), itemID)
	if err != nil {
		return nil, fmt.Errorf("list errors by record: %w", err)
	}
	defer rows.Close()
	return collectErrors(rows)
}

func (s *Postgres) Update(ctx context.Context, e *Error) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE validation_errors SET
			resolution_status = $2, resolution_notes = $3, resolution_action = $4,
			resolved_by = $5, resolved_at = $6,
			auto_fix_attempted = $7, auto_fix_success = $8,
			updated_at = NOW()
		WHERE id = $1`,
		e.ID, e.ResolutionStatus, e.ResolutionNotes, e.ResolutionAction,
		e.ResolvedBy, e.ResolvedAt, e.AutoFixAttempted, e.AutoFixSucceeded)
	if err != nil {
		return fmt.Errorf("update error row: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update error row: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanError(row rowScanner) (*Error, error) {
	var e Error
	var itemType string
	err := row.Scan(
		&e.ID, &e.RunID, &e.Source, &e.FileType, &e.Code, &e.Severity,
		&e.FieldName, &e.RecordIdentifier,
		&itemType, &e.ItemID,
		&e.Message, &e.SubmittedValue, &e.ExpectedFormat, &e.ResolutionGuidance,
		&e.ResolutionStatus, &e.ResolutionNotes, &e.ResolutionAction,
		&e.ResolvedBy, &e.ResolvedAt,
		&e.AutoFixable, &e.FixFunction, &e.AutoFixAttempted, &e.AutoFixSucceeded,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.ItemType = records.EntityType(itemType)
	return &e, nil
}

func collectErrors(rows *sql.Rows) ([]*Error, error) {
	var out []*Error
	for rows.Next() {
		e, err := scanError(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate error rows: %w", err)
	}
	return out, nil
}
