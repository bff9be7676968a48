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
	"gorm.io/gorm/clause"
)

// grantRepository manages the user_roles and role_permissions relation tables.
type grantRepository struct {
	db *gorm.DB
}

// NewGrantRepository is the constructor for grantRepository.
func NewGrantRepository(db *gorm.DB) repository.GrantRepository {
	return &grantRepository{db: db}
}

func (repo *grantRepository) AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}

	rows := make([]model.UserRoleModel, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		rows = append(rows, model.UserRoleModel{UserID: userID, RoleID: roleID})
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRoleNotFound.WrapMessage("role or user does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to assign roles")
	}

	return nil
}

func (repo *grantRepository) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRoleModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke role")
	}

	return nil
}

func (repo *grantRepository) RolesOfUser(ctx context.Context, userID uuid.UUID) ([]*entity.Role, error) {
	var roleMs []*model.RoleModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Order("roles.name").
		Find(&roleMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user roles")
	}

	return model.ToRoleDomains(roleMs), nil
}

func (repo *grantRepository) CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserRoleModel{}).Where("role_id = ?", roleID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count role holders")
	}

	return count, nil
}

func (repo *grantRepository) GrantPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	if len(permissionIDs) == 0 {
		return nil
	}

	rows := make([]model.RolePermissionModel, 0, len(permissionIDs))
	for _, permissionID := range permissionIDs {
		rows = append(rows, model.RolePermissionModel{RoleID: roleID, PermissionID: permissionID})
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrPermissionNotFound.WrapMessage("permission or role does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to grant permissions")
	}

	return nil
}

func (repo *grantRepository) RevokePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&model.RolePermissionModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke permission")
	}

	return nil
}

func (repo *grantRepository) PermissionsOfRole(ctx context.Context, roleID uuid.UUID) ([]*entity.Permission, error) {
	var permMs []*model.PermissionModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.name").
		Find(&permMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load role permissions")
	}

	return model.ToPermissionDomains(permMs), nil
}

// PermissionsOfUser returns the union of permissions across all of the user's roles.
func (repo *grantRepository) PermissionsOfUser(ctx context.Context, userID uuid.UUID) ([]*entity.Permission, error) {
	var permMs []*model.PermissionModel
	err := repo.db.WithContext(ctx).
		Distinct("permissions.*").
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Where("ur.user_id = ?", userID).
		Order("permissions.name").
		Find(&permMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user permissions")
	}

	return model.ToPermissionDomains(permMs), nil
}

func (repo *grantRepository) CountRolesWithPermission(ctx context.Context, permissionID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.RolePermissionModel{}).
		Where("permission_id = ?", permissionID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count permission holders")
	}

	return count, nil
}
