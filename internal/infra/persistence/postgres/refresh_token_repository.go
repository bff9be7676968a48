package postgres

import (
	"context"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (repo *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh token id")
		}
		token.ID = id
	}

	tokenM := model.FromRefreshTokenDomain(token)
	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh token already stored")
		case isForeignKeyConstraintViolation(err):
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindRefreshTokenByHash reads from the primary so a token issued a moment ago
// is visible even when replicas lag.
func (repo *refreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return repo.findByHash(repo.db.WithContext(ctx).Clauses(dbresolver.Write), tokenHash)
}

// LockRefreshTokenByHash takes a row lock held until the surrounding
// transaction ends. Concurrent refreshes of the same token serialize here.
func (repo *refreshTokenRepository) LockRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return repo.findByHash(
		repo.db.WithContext(ctx).Clauses(dbresolver.Write, clause.Locking{Strength: "UPDATE"}),
		tokenHash,
	)
}

func (repo *refreshTokenRepository) findByHash(db *gorm.DB, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	if err := db.Where("token_hash = ?", tokenHash).First(&tokenM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	return model.ToRefreshTokenDomain(&tokenM), nil
}

// RevokeRefreshToken flips the revoked flag only if it is still unset and
// reports whether this call performed the transition.
func (repo *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.RefreshTokenModel{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke refresh token")
	}

	return result.RowsAffected == 1, nil
}

func (repo *refreshTokenRepository) FindActiveRefreshTokensByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error) {
	var tokenMs []*model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, now).
		Order("created_at DESC").
		Find(&tokenMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active refresh tokens")
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenMs))
	for _, tokenM := range tokenMs {
		tokens = append(tokens, model.ToRefreshTokenDomain(tokenM))
	}

	return tokens, nil
}

func (repo *refreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete refresh tokens")
	}

	return result.RowsAffected, nil
}

func (repo *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired refresh tokens")
	}

	return result.RowsAffected, nil
}
