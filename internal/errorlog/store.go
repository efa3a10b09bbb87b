package errorlog

import (
	"context"

	"preflight/internal/records"
)

// Store is the persistence contract for error rows. Create assigns the
// durable identity; Update rewrites mutable resolution fields only.
// No Delete: error rows are append-and-resolve.
//
// Writes issued inside a remediation scope must join the transaction
// carried by ctx (pkg/platform/tx).
type Store interface {
	Create(ctx context.Context, e *Error) error
	FindByID(ctx context.Context, id int64) (*Error, error)
	ListByRun(ctx context.Context, runID string) ([]*Error, error)
	ListByStatus(ctx context.Context, status ResolutionStatus) ([]*Error, error)
	ListByRecord(ctx context.Context, itemType records.EntityType, itemID int64) ([]*Error, error)
	Update(ctx context.Context, e *Error) error
}
