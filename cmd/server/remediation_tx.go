package main

import (
	"context"
	"database/sql"
	"time"

	dErrors "preflight/pkg/domain-errors"
	"preflight/pkg/platform/tx"
)

const defaultFixTxTimeout = 5 * time.Second

// remediationPostgresTx scopes one fix attempt to a SQL transaction. The
// transaction rides the context (pkg/platform/tx) so the record and error
// stores join it without signature changes.
type remediationPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newRemediationPostgresTx(db *sql.DB) *remediationPostgresTx {
	return &remediationPostgresTx{db: db}
}

func (t *remediationPostgresTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultFixTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return err
	}
	return nil
}
