package services

import (
	"context"
	"testing"

	"github.com/yungbote/ismaspace-backend/internal/data/repos"
	"github.com/yungbote/ismaspace-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
)

func TestUserService_Resolve(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedUser(t, db, 1, "default_user")
	log := testutil.Logger(t)
	svc := NewUserService(log, repos.NewUserRepo(db, log))
	ctx := context.Background()

	u, err := svc.Resolve(ctx, 1)
	if err != nil || u.ExternalReference != "default_user" {
		t.Fatalf("Resolve: user=%+v err=%v", u, err)
	}
	if _, err := svc.Resolve(ctx, 2); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown user: expected not_found, got %v", err)
	}
	if _, err := svc.Resolve(ctx, 0); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("zero id: expected validation, got %v", err)
	}
}

func TestUserService_EnsureDefault(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewUserService(log, repos.NewUserRepo(db, log))
	ctx := context.Background()

	u, err := svc.EnsureDefault(ctx, 1)
	if err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	if u.ID != 1 || u.ExternalReference != "default_user" {
		t.Fatalf("unexpected default user: %+v", u)
	}
	again, err := svc.EnsureDefault(ctx, 1)
	if err != nil || again.ID != 1 {
		t.Fatalf("second EnsureDefault: user=%+v err=%v", again, err)
	}

	// A different id must not collide with the existing reference.
	other, err := svc.EnsureDefault(ctx, 7)
	if err != nil {
		t.Fatalf("EnsureDefault(7): %v", err)
	}
	if other.ExternalReference != "default_user_7" {
		t.Fatalf("unexpected reference: %q", other.ExternalReference)
	}
}
