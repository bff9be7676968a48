package memory

import (
	"context"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userRepository struct {
	st  *state
	now func() time.Time
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := repo.st.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return copyOf(user), nil
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range repo.st.users {
		if user.Username == username {
			return copyOf(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range repo.st.users {
		if user.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (repo *userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range repo.st.users {
		if user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	for _, existing := range repo.st.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already taken")
		}
	}

	if user.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	now := repo.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	repo.st.users[user.ID] = copyOf(user)

	return nil
}

func (repo *userRepository) UpdateStatus(_ context.Context, id uuid.UUID, enabled bool) error {
	user, ok := repo.st.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Enabled = enabled
	user.UpdatedAt = repo.now()

	return nil
}

func (repo *userRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	user, ok := repo.st.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.LastLogin = &at

	return nil
}

func (repo *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := repo.st.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	delete(repo.st.users, id)
	delete(repo.st.userRoles, id)
	for tokenID, token := range repo.st.refreshTokens {
		if token.UserID == id {
			delete(repo.st.refreshTokens, tokenID)
		}
	}

	return nil
}
