package learning

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/ismaspace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
)

// Runs against a real server so each goroutine holds its own connection and
// the upsert races on the row lock instead of the pool.
func TestProgressRepo_PostgresConcurrentToggles(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewProgressRepo(db, testutil.Logger(t))

	// Fresh ids per run; the shared database keeps rows between tests.
	userID := uint(1_000_000_000 + time.Now().UnixNano()%1_000_000_000)
	lessonID := uint(7)
	t.Cleanup(func() {
		_ = db.Where("user_id = ?", userID).Delete(&types.ProgressRecord{}).Error
	})

	for _, n := range []int{15, 16} {
		lesson := lessonID + uint(n)
		var wg sync.WaitGroup
		start := make(chan struct{})
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := repo.Toggle(dbctx.From(context.Background()), userID, lesson, time.Now())
				errs <- err
			}()
		}
		close(start)
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("n=%d concurrent Toggle: %v", n, err)
			}
		}

		dbc := dbctx.From(context.Background())
		if cnt, err := repo.CountByUserAndLesson(dbc, userID, lesson); err != nil || cnt != 1 {
			t.Fatalf("n=%d: want exactly one row, got %d (err=%v)", n, cnt, err)
		}
		rec, err := repo.GetByUserAndLesson(dbc, userID, lesson)
		if err != nil || rec == nil {
			t.Fatalf("n=%d: GetByUserAndLesson: %v", n, err)
		}
		if want := n%2 == 1; rec.Completed() != want {
			t.Fatalf("n=%d: completed want=%v got=%v", n, want, rec.Completed())
		}
	}
}
