package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"preflight/internal/errorlog"
	"preflight/internal/records"
	"preflight/internal/validation/metrics"
	dErrors "preflight/pkg/domain-errors"
	"preflight/pkg/platform/sentinel"
)

// batchConcurrency caps concurrent evaluations in one batch. Evaluations are
// read-only against the record store, so this only bounds store load.
const batchConcurrency = 8

// Runner drives evaluations end to end: resolve the record, run its
// evaluator, persist every finding to the error log under a shared run ID.
type Runner struct {
	store   records.Store
	errors  errorlog.Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	provider    *ProviderEvaluator
	course      *CourseEvaluator
	unit        *UnitEvaluator
	staff       *StaffEvaluator
	student     *StudentEvaluator
	unitAttempt *UnitAttemptEvaluator
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for run summaries.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics enables validation metrics.
func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner constructs a Runner. The record store doubles as the evaluators'
// existence-lookup source.
func NewRunner(store records.Store, errorStore errorlog.Store, library Library, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:  store,
		errors: errorStore,
		logger: slog.Default(),

		provider:    NewProviderEvaluator(library),
		course:      NewCourseEvaluator(library, store),
		unit:        NewUnitEvaluator(library, store),
		staff:       NewStaffEvaluator(library, store),
		student:     NewStudentEvaluator(library, store),
		unitAttempt: NewUnitAttemptEvaluator(library, store),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// RunReport is the outcome of validating one record.
type RunReport struct {
	RunID    string             `json:"run_id"`
	Entity   records.EntityType `json:"entity"`
	RecordID int64              `json:"record_id"`
	Result   Result             `json:"result"`
}

// BatchReport aggregates one batch run. Items preserve the caller-supplied
// record order.
type BatchReport struct {
	RunID   string             `json:"run_id"`
	Entity  records.EntityType `json:"entity"`
	Total   int                `json:"total"`
	Valid   int                `json:"valid"`
	Invalid int                `json:"invalid"`
	Items   []*RunReport       `json:"items"`
}

// ValidateRecord validates one record and persists its findings under a
// fresh run ID.
func (r *Runner) ValidateRecord(ctx context.Context, entity records.EntityType, id int64, reportingPeriod string) (*RunReport, error) {
	runID := uuid.NewString()
	report, err := r.validateOne(ctx, runID, entity, id, reportingPeriod)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "validation run complete",
		"run_id", runID,
		"entity", entity,
		"record_id", id,
		"valid", report.Result.Valid,
		"errors", report.Result.ErrorCount(),
		"warnings", report.Result.WarningCount(),
	)
	return report, nil
}

// ValidateBatch validates independent records of one entity type
// concurrently. All findings share one run ID so the batch reads back as a
// single submission pass. Per-record evaluations are isolated; an
// infrastructure failure (record or error-log store) aborts the batch.
func (r *Runner) ValidateBatch(ctx context.Context, entity records.EntityType, ids []int64, reportingPeriod string) (*BatchReport, error) {
	runID := uuid.NewString()

	var mu sync.Mutex
	items := make([]*RunReport, 0, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			report, err := r.validateOne(gctx, runID, entity, id, reportingPeriod)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, report)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Restore caller order; goroutine completion order is arbitrary.
	order := make(map[int64]int, len(ids))
	for i, id := range ids {
		order[id] = i
	}
	sort.Slice(items, func(i, j int) bool {
		return order[items[i].RecordID] < order[items[j].RecordID]
	})

	report := &BatchReport{RunID: runID, Entity: entity, Total: len(items), Items: items}
	for _, item := range items {
		if item.Result.Valid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}

	r.logger.InfoContext(ctx, "batch validation complete",
		"run_id", runID,
		"entity", entity,
		"total", report.Total,
		"invalid", report.Invalid,
	)
	return report, nil
}

func (r *Runner) validateOne(ctx context.Context, runID string, entity records.EntityType, id int64, reportingPeriod string) (*RunReport, error) {
	start := time.Now()

	result, err := r.evaluate(ctx, entity, id, reportingPeriod)
	if err != nil {
		r.metrics.IncrementRun(string(entity), "error")
		return nil, err
	}

	if err := r.persist(ctx, runID, entity, id, result); err != nil {
		r.metrics.IncrementRun(string(entity), "error")
		return nil, err
	}

	outcome := "valid"
	if !result.Valid {
		outcome = "invalid"
	}
	r.metrics.IncrementRun(string(entity), outcome)
	r.metrics.AddFindings(string(entity), "ERROR", result.ErrorCount())
	r.metrics.AddFindings(string(entity), "WARNING", result.WarningCount())
	r.metrics.ObserveEvaluateLatency(string(entity), time.Since(start))

	return &RunReport{RunID: runID, Entity: entity, RecordID: id, Result: result}, nil
}

// evaluate dispatches to the entity's evaluator after resolving the record.
func (r *Runner) evaluate(ctx context.Context, entity records.EntityType, id int64, reportingPeriod string) (Result, error) {
	switch entity {
	case records.EntityProvider:
		rec, err := r.store.FindProvider(ctx, id)
		if err != nil {
			return Result{}, r.lookupErr(entity, id, err)
		}
		return r.provider.Validate(ctx, rec, reportingPeriod)
	case records.EntityCourse:
		rec, err := r.store.FindCourse(ctx, id)
		if err != nil {
			return Result{}, r.lookupErr(entity, id, err)
		}
		return r.course.Validate(ctx, rec, reportingPeriod)
	case records.EntityUnit:
		rec, err := r.store.FindUnit(ctx, id)
		if err != nil {
			return Result{}, r.lookupErr(entity, id, err)
		}
		return r.unit.Validate(ctx, rec, reportingPeriod)
	case records.EntityStaff:
		rec, err := r.store.FindStaff(ctx, id)
		if err != nil {
			return Result{}, r.lookupErr(entity, id, err)
		}
		return r.staff.Validate(ctx, rec, reportingPeriod)
	case records.EntityStudent:
		rec, err := r.store.FindStudent(ctx, id)
		if err != nil {
			return Result{}, r.lookupErr(entity, id, err)
		}
		return r.student.Validate(ctx, rec, reportingPeriod)
	case records.EntityUnitAttempt:
		rec, err := r.store.FindUnitAttempt(ctx, id)
		if err != nil {
			return Result{}, r.lookupErr(entity, id, err)
		}
		return r.unitAttempt.Validate(ctx, rec, reportingPeriod)
	}
	return Result{}, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown entity type %q", entity))
}

func (r *Runner) persist(ctx context.Context, runID string, entity records.EntityType, id int64, result Result) error {
	for _, issue := range result.Issues() {
		row := &errorlog.Error{
			RunID:              runID,
			Source:             errorlog.SourcePreValidation,
			FileType:           entity,
			Code:               issue.Code,
			Severity:           issue.Severity,
			FieldName:          issue.FieldName,
			RecordIdentifier:   issue.RecordIdentifier,
			ItemType:           entity,
			ItemID:             id,
			Message:            issue.Message,
			SubmittedValue:     issue.SubmittedValue,
			ExpectedFormat:     issue.ExpectedFormat,
			ResolutionGuidance: issue.ResolutionGuidance,
			AutoFixable:        issue.AutoFixable,
			FixFunction:        issue.FixFunction,
		}
		if err := r.errors.Create(ctx, row); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "persist validation finding")
		}
	}
	return nil
}

func (r *Runner) lookupErr(entity records.EntityType, id int64, err error) error {
	code := dErrors.CodeInternal
	if errors.Is(err, sentinel.ErrNotFound) {
		code = dErrors.CodeNotFound
	}
	return dErrors.Wrap(err, code, fmt.Sprintf("resolve %s record %d", entity, id))
}
