package pgstore

import (
	"context"

	"roomreserve/internal/domain/user"
	"roomreserve/internal/infra"
	"roomreserve/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	query, args, err := qb.Insert("users").
		Columns("id", "email", "display_name", "password_hash", "role", "is_active", "created_at").
		Values(u.ID(), u.Email().Value(), u.DisplayName(), u.PasswordHash(), u.Role().String(), u.IsActive(), u.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user insert", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapPgErr("failed to insert user", err)
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, _, err := s.findOne(ctx, sq.Eq{"id": id})
	return view, err
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	return s.findOne(ctx, sq.Eq{"email": email})
}

func (s *UserStore) findOne(ctx context.Context, pred sq.Eq) (*queries.AuthorizedUserView, string, error) {
	query, args, err := qb.Select("id", "email", "display_name", "password_hash", "role", "is_active").
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to build user select", err)
	}

	var (
		v            queries.AuthorizedUserView
		passwordHash string
	)
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&v.ID, &v.Email, &v.DisplayName, &passwordHash, &v.Role, &v.IsActive)
	if err != nil {
		return nil, "", mapPgErr("failed to scan user", err)
	}
	return &v, passwordHash, nil
}
