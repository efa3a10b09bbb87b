// Package httptransport is the thin HTTP layer. It delegates to the
// validation runner, the error log, and the remediation service without
// embedding business logic so transport concerns remain isolated.
package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"preflight/internal/errorlog"
	"preflight/internal/records"
	"preflight/internal/remediation"
	"preflight/internal/validation"
	dErrors "preflight/pkg/domain-errors"
	"preflight/pkg/platform/httputil"
	"preflight/pkg/platform/sentinel"
	"preflight/pkg/requestcontext"
)

// Validator runs rule evaluation against stored records.
type Validator interface {
	ValidateRecord(ctx context.Context, entity records.EntityType, id int64, reportingPeriod string) (*validation.RunReport, error)
	ValidateBatch(ctx context.Context, entity records.EntityType, ids []int64, reportingPeriod string) (*validation.BatchReport, error)
}

// Fixer applies automatic remediation to persisted errors.
type Fixer interface {
	AttemptFix(ctx context.Context, errorID int64) remediation.Outcome
	BulkFix(ctx context.Context, errorIDs []int64) remediation.BulkOutcome
}

// Handler wires the engine's endpoints to its services.
type Handler struct {
	validator       Validator
	errors          errorlog.Store
	fixer           Fixer
	logger          *slog.Logger
	reportingPeriod string
}

// NewHandler constructs the HTTP handler with its dependencies.
// reportingPeriod is the default collection cycle for runs that don't name
// one.
func NewHandler(validator Validator, errorStore errorlog.Store, fixer Fixer, logger *slog.Logger, reportingPeriod string) *Handler {
	return &Handler{
		validator:       validator,
		errors:          errorStore,
		fixer:           fixer,
		logger:          logger,
		reportingPeriod: reportingPeriod,
	}
}

type batchRequest struct {
	IDs             []int64 `json:"ids"`
	ReportingPeriod string  `json:"reporting_period,omitempty"`
}

type bulkFixRequest struct {
	ErrorIDs []int64 `json:"error_ids"`
}

type resolutionRequest struct {
	ResolutionStatus string `json:"resolution_status"`
	ResolutionNotes  string `json:"resolution_notes,omitempty"`
}

// HandleValidateRecord handles POST /validate/{entity}/{id}.
func (h *Handler) HandleValidateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entity, err := records.ParseEntityType(chi.URLParam(r, "entity"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	report, err := h.validator.ValidateRecord(ctx, entity, id, h.reportingPeriod)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation request failed",
			"request_id", requestcontext.RequestID(ctx),
			"entity", entity,
			"record_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "validation request served",
		"request_id", requestcontext.RequestID(ctx),
		"entity", entity,
		"record_id", id,
		"valid", report.Result.Valid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleValidateBatch handles POST /validate/{entity}.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entity, err := records.ParseEntityType(chi.URLParam(r, "entity"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}

	req, ok := httputil.Decode[batchRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.IDs) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "ids must not be empty"))
		return
	}

	period := req.ReportingPeriod
	if period == "" {
		period = h.reportingPeriod
	}

	report, err := h.validator.ValidateBatch(ctx, entity, req.IDs, period)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestcontext.RequestID(ctx),
			"entity", entity,
			"count", len(req.IDs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleGetError handles GET /errors/{id}.
func (h *Handler) HandleGetError(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	row, err := h.errors.FindByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, h.storeErr(err, "error row"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, row)
}

// HandleListRunErrors handles GET /runs/{runID}/errors.
func (h *Handler) HandleListRunErrors(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if runID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "run id required"))
		return
	}

	rows, err := h.errors.ListByRun(r.Context(), runID)
	if err != nil {
		httputil.WriteError(w, h.storeErr(err, "run errors"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"run_id": runID,
		"total":  len(rows),
		"errors": rows,
	})
}

// HandleListErrorsByStatus handles GET /errors. The status query parameter
// is required so the endpoint cannot dump the whole log.
func (h *Handler) HandleListErrorsByStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := errorlog.ParseResolutionStatus(r.URL.Query().Get("status"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown resolution status"))
		return
	}

	rows, err := h.errors.ListByStatus(r.Context(), status)
	if err != nil {
		httputil.WriteError(w, h.storeErr(err, "errors"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"total":  len(rows),
		"errors": rows,
	})
}

// HandleListRecordErrors handles GET /records/{entity}/{id}/errors.
func (h *Handler) HandleListRecordErrors(w http.ResponseWriter, r *http.Request) {
	entity, err := records.ParseEntityType(chi.URLParam(r, "entity"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.errors.ListByRecord(r.Context(), entity, id)
	if err != nil {
		httputil.WriteError(w, h.storeErr(err, "record errors"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entity":  entity,
		"item_id": id,
		"total":   len(rows),
		"errors":  rows,
	})
}

// HandleResolveError handles PATCH /errors/{id}/resolution: a manual
// resolution by an operator, for errors the fix catalog cannot touch.
func (h *Handler) HandleResolveError(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := httputil.Decode[resolutionRequest](w, r, h.logger)
	if !ok {
		return
	}
	status, ok := errorlog.ParseResolutionStatus(req.ResolutionStatus)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown resolution status"))
		return
	}

	row, err := h.errors.FindByID(ctx, id)
	if err != nil {
		httputil.WriteError(w, h.storeErr(err, "error row"))
		return
	}

	row.ResolutionStatus = status
	row.ResolutionNotes = req.ResolutionNotes
	switch status {
	case errorlog.StatusResolved, errorlog.StatusIgnored, errorlog.StatusCannotFix:
		resolvedAt := requestcontext.Now(ctx)
		row.ResolvedBy = requestcontext.OperatorID(ctx)
		row.ResolvedAt = &resolvedAt
	default:
		row.ResolvedBy = ""
		row.ResolvedAt = nil
	}

	if err := h.errors.Update(ctx, row); err != nil {
		httputil.WriteError(w, h.storeErr(err, "error row"))
		return
	}

	h.logger.InfoContext(ctx, "error resolution updated",
		"request_id", requestcontext.RequestID(ctx),
		"error_id", id,
		"status", status,
		"operator", requestcontext.OperatorID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, row)
}

// HandleFix handles POST /errors/{id}/fix. The outcome is always a 200:
// a rejected fix is a business result, not a transport failure.
func (h *Handler) HandleFix(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	outcome := h.fixer.AttemptFix(r.Context(), id)
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

// HandleBulkFix handles POST /errors/fix-bulk.
func (h *Handler) HandleBulkFix(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[bulkFixRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.ErrorIDs) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "error_ids must not be empty"))
		return
	}

	result := h.fixer.BulkFix(r.Context(), req.ErrorIDs)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid numeric id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) storeErr(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "load "+what)
}
