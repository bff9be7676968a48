package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type refreshTokenRepository struct {
	st  *state
	now func() time.Time
}

func (repo *refreshTokenRepository) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if _, ok := repo.st.users[token.UserID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, existing := range repo.st.refreshTokens {
		if existing.TokenHash == token.TokenHash {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh token already stored")
		}
	}

	if token.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh token id")
		}
		token.ID = id
	}
	token.CreatedAt = repo.now()

	repo.st.refreshTokens[token.ID] = copyOf(token)

	return nil
}

func (repo *refreshTokenRepository) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	for _, token := range repo.st.refreshTokens {
		if token.TokenHash == tokenHash {
			return copyOf(token), nil
		}
	}

	return nil, repository.ErrRefreshTokenNotFound
}

// LockRefreshTokenByHash needs no extra locking: the whole transaction already holds the store lock.
func (repo *refreshTokenRepository) LockRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return repo.FindRefreshTokenByHash(ctx, tokenHash)
}

func (repo *refreshTokenRepository) RevokeRefreshToken(_ context.Context, id uuid.UUID) (bool, error) {
	token, ok := repo.st.refreshTokens[id]
	if !ok || token.Revoked {
		return false, nil
	}
	token.Revoked = true

	return true, nil
}

func (repo *refreshTokenRepository) FindActiveRefreshTokensByUserID(_ context.Context, userID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error) {
	var tokens []*entity.RefreshToken
	for _, token := range repo.st.refreshTokens {
		if token.UserID == userID && token.IsActive(now) {
			tokens = append(tokens, copyOf(token))
		}
	}
	slices.SortFunc(tokens, func(a, b *entity.RefreshToken) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return tokens, nil
}

func (repo *refreshTokenRepository) DeleteRefreshTokensByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64
	for id, token := range repo.st.refreshTokens {
		if token.UserID == userID {
			delete(repo.st.refreshTokens, id)
			deleted++
		}
	}

	return deleted, nil
}

func (repo *refreshTokenRepository) DeleteExpiredRefreshTokens(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, token := range repo.st.refreshTokens {
		if token.IsExpired(now) {
			delete(repo.st.refreshTokens, id)
			deleted++
		}
	}

	return deleted, nil
}
