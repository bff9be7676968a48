package postgres

import (
	"context"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository is the constructor for permissionRepository.
func NewPermissionRepository(db *gorm.DB) repository.PermissionRepository {
	return &permissionRepository{db: db}
}

func (repo *permissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Permission, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *permissionRepository) FindByName(ctx context.Context, name string) (*entity.Permission, error) {
	return repo.findOne(ctx, "name = ?", name)
}

func (repo *permissionRepository) findOne(ctx context.Context, query string, arg any) (*entity.Permission, error) {
	var permM model.PermissionModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&permM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrPermissionNotFound
		}

		return nil, errors.Wrap(err, "failed to find permission")
	}

	return model.ToPermissionDomain(&permM), nil
}

func (repo *permissionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Permission, error) {
	if len(ids) == 0 {
		return []*entity.Permission{}, nil
	}

	var permMs []*model.PermissionModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&permMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find permissions")
	}

	return model.ToPermissionDomains(permMs), nil
}

func (repo *permissionRepository) Create(ctx context.Context, permission *entity.Permission) error {
	if permission.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate permission id")
		}
		permission.ID = id
	}

	permM := model.FromPermissionDomain(permission)
	if err := repo.db.WithContext(ctx).Create(permM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPermissionAlreadyExists.WithDetails(permission.Name)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create permission")
	}

	permission.CreatedAt = permM.CreatedAt

	return nil
}

func (repo *permissionRepository) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	result := repo.db.WithContext(ctx).Model(&model.PermissionModel{}).Where("id = ?", id).
		Update("description", description)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update permission")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPermissionNotFound
	}

	return nil
}

func (repo *permissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PermissionModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrPermissionInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete permission")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPermissionNotFound
	}

	return nil
}
