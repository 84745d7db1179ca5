package aggregates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
)

// TxRunner runs fn inside one store transaction. fn may be called more than
// once when the store aborts the transaction for a retryable reason, so it
// must not have side effects outside dbc.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

const (
	defaultTxAttempts = 3
	txRetryBackoff    = 5 * time.Millisecond
)

type gormTxRunner struct {
	db       *gorm.DB
	attempts int
}

type TxOption func(*gormTxRunner)

// WithTxAttempts bounds how often a deadlocked or busy transaction is re-run.
func WithTxAttempts(n int) TxOption {
	return func(r *gormTxRunner) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func NewGormTxRunner(db *gorm.DB, opts ...TxOption) TxRunner {
	r := &gormTxRunner{db: db, attempts: defaultTxAttempts}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "tx", "transaction runner has nil db", nil)
	}
	var err error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(dbctx.Context{Ctx: ctx, Tx: tx})
		})
		if err == nil || !retryableTx(err) || attempt == r.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return MapError("tx", ctx.Err())
		case <-time.After(time.Duration(attempt) * txRetryBackoff):
		}
	}
	return err
}

// retryableTx reports store aborts that leave no trace of the attempt:
// postgres serialization failures and deadlocks, sqlite busy locks.
func retryableTx(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}
