package records

import "context"

// Store is interface-driven to keep the engine testable and to allow
// swapping the in-memory store for postgres without rewiring business code.
//
// Reads must be consistent within one evaluation or fix call. Writes inside a
// remediation scope must join the transaction carried by ctx
// (pkg/platform/tx); the in-memory store applies them directly because fix
// routines verify their postcondition before mutating.
type Store interface {
	FindProvider(ctx context.Context, id int64) (*Provider, error)
	FindCourse(ctx context.Context, id int64) (*Course, error)
	FindUnit(ctx context.Context, id int64) (*Unit, error)
	FindStaff(ctx context.Context, id int64) (*Staff, error)
	FindStudent(ctx context.Context, id int64) (*Student, error)
	FindUnitAttempt(ctx context.Context, id int64) (*UnitAttempt, error)

	SaveCourse(ctx context.Context, course *Course) error
	SaveUnit(ctx context.Context, unit *Unit) error
	SaveStaff(ctx context.Context, staff *Staff) error
	SaveStudent(ctx context.Context, student *Student) error

	// ExistsByNaturalKey reports whether any record of the given entity type
	// carries the natural key (course code, unit code, staff identifier,
	// student CHESSN, provider code). excludeID ignores the record's own row
	// on update-time uniqueness checks; pass 0 to match all rows.
	ExistsByNaturalKey(ctx context.Context, entity EntityType, key string, excludeID int64) (bool, error)
}
