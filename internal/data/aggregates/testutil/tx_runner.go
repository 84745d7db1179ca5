package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/ismaspace-backend/internal/data/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
)

// InjectedTxRunner injects begin/commit failures around a real or absent
// transaction. When Inner is nil the body runs without a transaction.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner aggregates.TxRunner

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	body := func(dbc dbctx.Context) error {
		if fn == nil {
			return nil
		}
		if err := fn(dbc); err != nil {
			return err
		}
		// Returning the injected commit error from inside the body makes a
		// real inner transaction roll back.
		return failCommit
	}
	var err error
	if r.Inner != nil {
		err = r.Inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
