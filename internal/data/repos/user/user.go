package user

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type UserRepo interface {
	GetByID(dbc dbctx.Context, id uint) (*types.User, error)
	GetByExternalReference(dbc dbctx.Context, ref string) (*types.User, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
	// CreateIfMissing inserts u unless a row with the same id exists.
	CreateIfMissing(dbc dbctx.Context, u *types.User) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uint) (*types.User, error) {
	return r.first(dbc, "id = ?", id)
}

func (r *userRepo) GetByExternalReference(dbc dbctx.Context, ref string) (*types.User, error) {
	return r.first(dbc, "external_reference = ?", ref)
}

func (r *userRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	var n int64
	if err := dbc.Conn(r.db).Model(&types.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepo) CreateIfMissing(dbc dbctx.Context, u *types.User) error {
	if u == nil {
		return nil
	}
	return dbc.Conn(r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(u).Error
}

func (r *userRepo) first(dbc dbctx.Context, query string, args ...interface{}) (*types.User, error) {
	var out []*types.User
	if err := dbc.Conn(r.db).Where(query, args...).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
