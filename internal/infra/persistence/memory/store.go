// Package memory is an in-process entity store. Transactions are serialized by
// a store-wide mutex and run against a private copy of the state that replaces
// the committed state only when the callback succeeds.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
)

type idSet map[uuid.UUID]struct{}

type state struct {
	users           map[uuid.UUID]*entity.User
	roles           map[uuid.UUID]*entity.Role
	permissions     map[uuid.UUID]*entity.Permission
	userRoles       map[uuid.UUID]idSet
	rolePermissions map[uuid.UUID]idSet
	refreshTokens   map[uuid.UUID]*entity.RefreshToken
}

func newState() *state {
	return &state{
		users:           make(map[uuid.UUID]*entity.User),
		roles:           make(map[uuid.UUID]*entity.Role),
		permissions:     make(map[uuid.UUID]*entity.Permission),
		userRoles:       make(map[uuid.UUID]idSet),
		rolePermissions: make(map[uuid.UUID]idSet),
		refreshTokens:   make(map[uuid.UUID]*entity.RefreshToken),
	}
}

// clone copies the maps and the records they point to, so writes made inside a
// transaction stay private until commit.
func (s *state) clone() *state {
	c := &state{
		users:           cloneRecords(s.users),
		roles:           cloneRecords(s.roles),
		permissions:     cloneRecords(s.permissions),
		userRoles:       make(map[uuid.UUID]idSet, len(s.userRoles)),
		rolePermissions: make(map[uuid.UUID]idSet, len(s.rolePermissions)),
		refreshTokens:   cloneRecords(s.refreshTokens),
	}
	for id, set := range s.userRoles {
		c.userRoles[id] = maps.Clone(set)
	}
	for id, set := range s.rolePermissions {
		c.rolePermissions[id] = maps.Clone(set)
	}

	return c
}

func cloneRecords[T any](in map[uuid.UUID]*T) map[uuid.UUID]*T {
	out := make(map[uuid.UUID]*T, len(in))
	for id, rec := range in {
		cp := *rec
		out[id] = &cp
	}

	return out
}

func copyOf[T any](rec *T) *T {
	cp := *rec

	return &cp
}

// Store holds every entity of the memory driver.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState(), now: time.Now}
}

// SeedRoles creates the named roles if they do not exist yet.
func (s *Store) SeedRoles(ctx context.Context, names ...string) error {
	return NewTransactionManager(s).Execute(ctx, func(f repository.RepositoryFactory) error {
		for _, name := range names {
			if _, err := f.RoleRepo().FindByName(ctx, name); err == nil {
				continue
			}
			if err := f.RoleRepo().Create(ctx, &entity.Role{Name: name}); err != nil {
				return err
			}
		}

		return nil
	})
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager backed by store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn on a copy of the state while holding the store lock.
// Callbacks must not call Execute again.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	work := tm.store.state.clone()
	if err := fn(&repositoryFactory{st: work, now: tm.store.now}); err != nil {
		return err
	}
	tm.store.state = work

	return nil
}

type repositoryFactory struct {
	st  *state
	now func() time.Time
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{st: f.st, now: f.now}
}

func (f *repositoryFactory) RoleRepo() repository.RoleRepository {
	return &roleRepository{st: f.st, now: f.now}
}

func (f *repositoryFactory) PermissionRepo() repository.PermissionRepository {
	return &permissionRepository{st: f.st, now: f.now}
}

func (f *repositoryFactory) GrantRepo() repository.GrantRepository {
	return &grantRepository{st: f.st}
}

func (f *repositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return &refreshTokenRepository{st: f.st, now: f.now}
}

func newID() (uuid.UUID, error) {
	return uuid.NewV7()
}
