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
)

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	return repo.findOne(ctx, "name = ?", name)
}

func (repo *roleRepository) findOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&roleM).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role")
	}

	return model.ToRoleDomain(&roleM), nil
}

func (repo *roleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	if len(ids) == 0 {
		return []*entity.Role{}, nil
	}

	var roleMs []*model.RoleModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&roleMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find roles")
	}

	return model.ToRoleDomains(roleMs), nil
}

func (repo *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	if role.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate role id")
		}
		role.ID = id
	}

	roleM := model.FromRoleDomain(role)
	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRoleAlreadyExists.WithDetails(role.Name)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create role")
	}

	role.CreatedAt = roleM.CreatedAt
	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

func (repo *roleRepository) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	result := repo.db.WithContext(ctx).Model(&model.RoleModel{}).Where("id = ?", id).
		Updates(map[string]any{"description": description, "updated_at": time.Now()})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	return nil
}

// Delete removes the role and its permission grants. User grants are checked by the caller.
func (repo *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("role_id = ?", id).Delete(&model.RolePermissionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete role permissions")
	}

	result := db.Where("id = ?", id).Delete(&model.RoleModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrRoleInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	return nil
}
