package remediation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"preflight/internal/errorlog"
	"preflight/internal/records"
	"preflight/internal/remediation/metrics"
	"preflight/internal/rules"
	"preflight/pkg/platform/audit"
	"preflight/pkg/platform/sentinel"
	"preflight/pkg/requestcontext"
)

// TxRunner provides the transactional boundary for one fix attempt: the
// record mutation and the error-row resolution stamp commit or roll back
// together. The context passed to fn carries the transaction
// (pkg/platform/tx) for the stores to join.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// passthroughTx runs the function without a transaction, for the in-memory
// stores. Fix routines verify their postcondition before mutating, so the
// no-rollback path cannot leave a record half-fixed.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// Library resolves error codes to rule definitions at fix time.
type Library interface {
	Lookup(ctx context.Context, code string) (rules.Definition, bool)
}

// errFixRejected aborts the transaction after a routine-reported failure.
// It is consumed inside AttemptFix and never escapes.
var errFixRejected = errors.New("fix rejected by routine")

// Service is the remediation orchestrator.
type Service struct {
	errors  errorlog.Store
	store   records.Store
	library Library
	catalog *Catalog
	tx      TxRunner
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
}

// Option configures a Service.
type Option func(*Service)

// WithTxRunner sets the transactional boundary. Defaults to a passthrough
// for in-memory stores.
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithLogger sets the logger for fault diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables remediation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher emits an audit event for every fix attempt.
func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) {
		s.audit = p
	}
}

// NewService constructs the orchestrator.
func NewService(errorStore errorlog.Store, recordStore records.Store, library Library, catalog *Catalog, opts ...Option) *Service {
	s := &Service{
		errors:  errorStore,
		store:   recordStore,
		library: library,
		catalog: catalog,
		tx:      passthroughTx{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AttemptFix tries to automatically remediate one persisted error. Every
// failure mode short of an unexpected fault is an ordinary business
// outcome, reported in the Outcome with no record mutation; only unexpected
// faults additionally stamp the error row as attempted-and-failed.
func (s *Service) AttemptFix(ctx context.Context, errorID int64) Outcome {
	start := time.Now()
	outcome := s.attemptFix(ctx, errorID)
	s.metrics.ObserveAttemptLatency(time.Since(start))
	return outcome
}

func (s *Service) attemptFix(ctx context.Context, errorID int64) Outcome {
	row, err := s.errors.FindByID(ctx, errorID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return failure("Error not found")
	}
	if err != nil {
		return failure("Cannot load error: %v", err)
	}

	def, ok := s.library.Lookup(ctx, row.Code)
	if !ok || !def.AutoFixable {
		return failure("This error cannot be automatically fixed")
	}

	routine, ok := s.catalog.Lookup(def.FixFunction)
	if !ok {
		return failure("Fix function '%s' not implemented", def.FixFunction)
	}

	var outcome Outcome
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := s.loadRecord(txCtx, row)
		if err != nil {
			return err
		}
		if record == nil {
			outcome = failure("Record not found")
			return errFixRejected
		}

		outcome = routine(record, row)
		if !outcome.Success {
			return errFixRejected
		}

		if err := s.saveRecord(txCtx, record); err != nil {
			return fmt.Errorf("persist fixed record: %w", err)
		}

		resolvedAt := requestcontext.Now(txCtx)
		row.ResolutionStatus = errorlog.StatusResolved
		row.ResolutionAction = outcome.ActionTaken
		row.AutoFixAttempted = true
		row.AutoFixSucceeded = true
		row.ResolvedBy = requestcontext.OperatorID(txCtx)
		row.ResolvedAt = &resolvedAt
		if err := s.errors.Update(txCtx, row); err != nil {
			return fmt.Errorf("stamp resolved error: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		s.metrics.IncrementAttempt(def.FixFunction, "fixed")
		s.emit(ctx, audit.ActionFixSucceeded, row, outcome.ActionTaken)
		return outcome

	case errors.Is(err, errFixRejected):
		// Rolled back; the record and the error row are untouched.
		s.metrics.IncrementAttempt(def.FixFunction, "rejected")
		s.emit(ctx, audit.ActionFixFailed, row, outcome.Message)
		return outcome

	default:
		// Unexpected fault: the transaction rolled back every record
		// mutation. Stamp the failed attempt on the error row in its own
		// write so the diagnostic survives. Re-fetch first so rolled-back
		// resolution stamps on the in-memory row do not leak through.
		s.logger.ErrorContext(ctx, "auto-fix fault",
			"error_id", errorID,
			"error_code", row.Code,
			"routine", def.FixFunction,
			"error", err,
		)
		if fresh, findErr := s.errors.FindByID(ctx, errorID); findErr == nil {
			row = fresh
		}
		row.AutoFixAttempted = true
		row.AutoFixSucceeded = false
		row.ResolutionNotes = "Auto-fix failed: " + err.Error()
		if updateErr := s.errors.Update(ctx, row); updateErr != nil {
			s.logger.ErrorContext(ctx, "auto-fix fault stamp failed",
				"error_id", errorID,
				"error", updateErr,
			)
		}
		s.metrics.IncrementAttempt(def.FixFunction, "fault")
		s.emit(ctx, audit.ActionFixFailed, row, err.Error())
		return failure("Auto-fix failed: %v", err)
	}
}

// BulkFix runs AttemptFix over the ids in order, each in its own
// transaction.
func (s *Service) BulkFix(ctx context.Context, errorIDs []int64) BulkOutcome {
	result := BulkOutcome{
		Total:   len(errorIDs),
		Details: make(map[int64]Outcome, len(errorIDs)),
	}

	for _, id := range errorIDs {
		outcome := s.AttemptFix(ctx, id)
		if outcome.Success {
			result.Fixed++
		} else {
			result.Failed++
		}
		result.Details[id] = outcome
	}

	s.logger.InfoContext(ctx, "bulk fix complete",
		"total", result.Total,
		"fixed", result.Fixed,
		"failed", result.Failed,
	)
	return result
}

// loadRecord resolves the error's target record. A nil record with nil
// error means the tag or the row is missing, which is a business failure,
// not a fault.
func (s *Service) loadRecord(ctx context.Context, row *errorlog.Error) (any, error) {
	var (
		record any
		err    error
	)
	switch row.ItemType {
	case records.EntityStudent:
		record, err = s.store.FindStudent(ctx, row.ItemID)
	case records.EntityCourse:
		record, err = s.store.FindCourse(ctx, row.ItemID)
	case records.EntityUnit:
		record, err = s.store.FindUnit(ctx, row.ItemID)
	case records.EntityStaff:
		record, err = s.store.FindStaff(ctx, row.ItemID)
	default:
		return nil, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %s record %d: %w", row.ItemType, row.ItemID, err)
	}
	return record, nil
}

func (s *Service) saveRecord(ctx context.Context, record any) error {
	switch rec := record.(type) {
	case *records.Student:
		return s.store.SaveStudent(ctx, rec)
	case *records.Course:
		return s.store.SaveCourse(ctx, rec)
	case *records.Unit:
		return s.store.SaveUnit(ctx, rec)
	case *records.Staff:
		return s.store.SaveStaff(ctx, rec)
	}
	return fmt.Errorf("no save path for record type %T", record)
}

func (s *Service) emit(ctx context.Context, action string, row *errorlog.Error, detail string) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Action:    action,
		Entity:    string(row.ItemType),
		RecordID:  row.ItemID,
		ErrorID:   row.ID,
		ErrorCode: row.Code,
		Detail:    detail,
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
