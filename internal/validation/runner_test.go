package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preflight/internal/errorlog"
	"preflight/internal/records"
	dErrors "preflight/pkg/domain-errors"
)

func newTestRunner(t *testing.T) (*Runner, *records.InMemory, *errorlog.InMemory) {
	t.Helper()
	store := records.NewInMemory()
	errLog := errorlog.NewInMemory()
	return NewRunner(store, errLog, builtinLibrary()), store, errLog
}

func TestValidateRecordPersistsFindings(t *testing.T) {
	ctx := context.Background()
	runner, store, errLog := newTestRunner(t)

	unit := store.AddUnit(&records.Unit{
		UnitCode:     "COMP 101", // space fails the code format
		UnitName:     "Intro",
		CreditPoints: "6",
		UnitLevel:    "1",
		// field_of_education missing
	})

	report, err := runner.ValidateRecord(ctx, records.EntityUnit, unit.ID, "2026-S1")
	require.NoError(t, err)
	assert.False(t, report.Result.Valid)
	require.NotEmpty(t, report.RunID)

	rows, err := errLog.ListByRun(ctx, report.RunID)
	require.NoError(t, err)
	require.Len(t, rows, report.Result.ErrorCount()+report.Result.WarningCount())

	for _, row := range rows {
		assert.Equal(t, errorlog.SourcePreValidation, row.Source)
		assert.Equal(t, records.EntityUnit, row.ItemType)
		assert.Equal(t, unit.ID, row.ItemID)
		assert.Equal(t, errorlog.StatusPending, row.ResolutionStatus)
	}
}

func TestValidateRecordUnknownID(t *testing.T) {
	runner, _, _ := newTestRunner(t)

	_, err := runner.ValidateRecord(context.Background(), records.EntityStudent, 404, "2026-S1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestValidateRecordUnknownEntity(t *testing.T) {
	runner, _, _ := newTestRunner(t)

	_, err := runner.ValidateRecord(context.Background(), records.EntityType("WIDGET"), 1, "2026-S1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestValidateBatch(t *testing.T) {
	ctx := context.Background()
	runner, store, errLog := newTestRunner(t)

	var ids []int64
	good := store.AddUnit(&records.Unit{
		UnitCode: "COMP101", UnitName: "Intro", CreditPoints: "6",
		UnitLevel: "1", FieldOfEducation: "020103",
	})
	bad := store.AddUnit(&records.Unit{UnitCode: "COMP 102"})
	also := store.AddUnit(&records.Unit{
		UnitCode: "COMP103", UnitName: "Algorithms", CreditPoints: "6",
		UnitLevel: "2", FieldOfEducation: "020103",
	})
	ids = append(ids, good.ID, bad.ID, also.ID)

	report, err := runner.ValidateBatch(ctx, records.EntityUnit, ids, "2026-S1")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Valid)
	assert.Equal(t, 1, report.Invalid)

	// Caller order preserved despite concurrent evaluation.
	require.Len(t, report.Items, 3)
	assert.Equal(t, good.ID, report.Items[0].RecordID)
	assert.Equal(t, bad.ID, report.Items[1].RecordID)
	assert.Equal(t, also.ID, report.Items[2].RecordID)

	// The whole batch shares one run ID.
	for _, item := range report.Items {
		assert.Equal(t, report.RunID, item.RunID)
	}
	rows, err := errLog.ListByRun(ctx, report.RunID)
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}

func TestValidateBatchAbortsOnMissingRecord(t *testing.T) {
	runner, store, _ := newTestRunner(t)
	unit := store.AddUnit(&records.Unit{
		UnitCode: "COMP101", UnitName: "Intro", CreditPoints: "6",
		UnitLevel: "1", FieldOfEducation: "020103",
	})

	_, err := runner.ValidateBatch(context.Background(), records.EntityUnit, []int64{unit.ID, 404}, "2026-S1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
