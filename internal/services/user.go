package services

import (
	"context"
	"strconv"

	"github.com/yungbote/ismaspace-backend/internal/data/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/data/repos"
	types "github.com/yungbote/ismaspace-backend/internal/domain"
	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type UserService interface {
	Resolve(ctx context.Context, userID uint) (*types.User, error)
	// EnsureDefault creates the fallback identity if it is missing.
	EnsureDefault(ctx context.Context, userID uint) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

const (
	defaultUserRef  = "default_user"
	defaultUserName = "Default User"
)

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{log: baseLog.With("service", "UserService"), userRepo: userRepo}
}

func (s *userService) Resolve(ctx context.Context, userID uint) (*types.User, error) {
	const op = "user.resolve"
	if userID == 0 {
		return nil, domainagg.Validation(op, "user id is required")
	}
	u, err := s.userRepo.GetByID(dbctx.From(ctx), userID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if u == nil {
		return nil, domainagg.NotFound(op, "user %d not found", userID)
	}
	return u, nil
}

func (s *userService) EnsureDefault(ctx context.Context, userID uint) (*types.User, error) {
	const op = "user.ensure_default"
	if userID == 0 {
		return nil, domainagg.Validation(op, "default user id is required")
	}
	dbc := dbctx.From(ctx)
	if u, err := s.userRepo.GetByID(dbc, userID); err != nil {
		return nil, aggregates.MapError(op, err)
	} else if u != nil {
		return u, nil
	}
	ref := defaultUserRef
	if existing, err := s.userRepo.GetByExternalReference(dbc, ref); err != nil {
		return nil, aggregates.MapError(op, err)
	} else if existing != nil {
		// The reference is taken by another id; keep the new row distinct.
		ref = ref + "_" + strconv.FormatUint(uint64(userID), 10)
	}
	if err := s.userRepo.CreateIfMissing(dbc, &types.User{ID: userID, ExternalReference: ref, DisplayName: defaultUserName}); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	s.log.Info("Default user created", "user_id", userID)
	return s.Resolve(ctx, userID)
}
