package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"roomreserve/internal/domain/user"
	"roomreserve/internal/infra"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type userRecord struct {
	id           uuid.UUID
	email        string
	displayName  string
	passwordHash string
	role         user.Role
	isActive     bool
	createdAt    time.Time
}

type UserStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]userRecord
	byEmail map[string]uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{
		records: make(map[uuid.UUID]userRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *UserStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(u.Email().Value())
	if _, ok := s.byEmail[email]; ok {
		return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	s.records[u.ID()] = userRecord{
		id:           u.ID(),
		email:        u.Email().Value(),
		displayName:  u.DisplayName(),
		passwordHash: u.PasswordHash(),
		role:         u.Role(),
		isActive:     u.IsActive(),
		createdAt:    u.CreatedAt(),
	}
	s.byEmail[email] = u.ID()
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return toUserView(rec), nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	rec := s.records[id]
	return toUserView(rec), rec.passwordHash, nil
}

func toUserView(rec userRecord) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          rec.id,
		Email:       rec.email,
		DisplayName: rec.displayName,
		Role:        rec.role.String(),
		IsActive:    rec.isActive,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
