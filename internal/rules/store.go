package rules

import (
	"context"
	"database/sql"
	"fmt"
)

// Store supplies the full rule definition set. The library refreshes from it
// on a bounded interval; staleness inside that interval is acceptable.
type Store interface {
	ListAll(ctx context.Context) ([]Definition, error)
}

// PostgresStore reads definitions from the rule library table, which the
// seeding process (external to this engine) keeps populated.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT error_code, file_type, category, field_name, description,
		       resolution_guidance, COALESCE(example_correct_value, ''),
		       severity_default, is_auto_fixable, COALESCE(auto_fix_function, '')
		FROM error_code_library
		ORDER BY error_code`)
	if err != nil {
		return nil, fmt.Errorf("list rule definitions: %w", err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.Code, &d.FileType, &d.Category, &d.FieldName, &d.Description,
			&d.ResolutionGuidance, &d.ExampleValue,
			&d.DefaultSeverity, &d.AutoFixable, &d.FixFunction); err != nil {
			return nil, fmt.Errorf("scan rule definition: %w", err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rule definitions: %w", err)
	}
	return defs, nil
}

// StaticStore serves the built-in definition set. It backs tests,
// DATABASE_URL-less development runs, and the seeding job.
type StaticStore struct {
	defs []Definition
}

func NewStaticStore(defs []Definition) *StaticStore {
	return &StaticStore{defs: defs}
}

func (s *StaticStore) ListAll(_ context.Context) ([]Definition, error) {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out, nil
}
