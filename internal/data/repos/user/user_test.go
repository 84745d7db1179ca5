package user

import (
	"context"
	"testing"

	"github.com/yungbote/ismaspace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.From(context.Background())

	u := &types.User{ID: 1, ExternalReference: "default_user", DisplayName: "Default User"}
	if err := repo.CreateIfMissing(dbc, u); err != nil {
		t.Fatalf("CreateIfMissing: %v", err)
	}
	if err := repo.CreateIfMissing(dbc, &types.User{ID: 1, ExternalReference: "default_user", DisplayName: "Renamed"}); err != nil {
		t.Fatalf("CreateIfMissing (repeat): %v", err)
	}

	got, err := repo.GetByID(dbc, 1)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v user=%v", err, got)
	}
	if got.DisplayName != "Default User" {
		t.Fatalf("repeat insert must not overwrite, got %q", got.DisplayName)
	}
	if byRef, err := repo.GetByExternalReference(dbc, "default_user"); err != nil || byRef == nil || byRef.ID != 1 {
		t.Fatalf("GetByExternalReference: err=%v user=%v", err, byRef)
	}
	if ok, _ := repo.Exists(dbc, 1); !ok {
		t.Fatalf("Exists(1) should be true")
	}
	if ok, _ := repo.Exists(dbc, 77); ok {
		t.Fatalf("Exists(77) should be false")
	}
	if missing, err := repo.GetByID(dbc, 77); err != nil || missing != nil {
		t.Fatalf("GetByID(missing): err=%v user=%v", err, missing)
	}
}
