package model

import "identity/internal/domain/entity"

// ToUserDomain maps a persistence model to a domain entity.
func ToUserDomain(m *UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:                    m.ID,
		Username:              m.Username,
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash,
		FirstName:             m.FirstName,
		LastName:              m.LastName,
		Enabled:               m.Enabled,
		AccountNonExpired:     m.AccountNonExpired,
		AccountNonLocked:      m.AccountNonLocked,
		CredentialsNonExpired: m.CredentialsNonExpired,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		LastLogin:             m.LastLogin,
	}
}

// FromUserDomain maps a domain entity to a persistence model.
func FromUserDomain(u *entity.User) *UserModel {
	return &UserModel{
		ID:                    u.ID,
		Username:              u.Username,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		Enabled:               u.Enabled,
		AccountNonExpired:     u.AccountNonExpired,
		AccountNonLocked:      u.AccountNonLocked,
		CredentialsNonExpired: u.CredentialsNonExpired,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		LastLogin:             u.LastLogin,
	}
}

// ToRoleDomain maps a persistence model to a domain entity.
func ToRoleDomain(m *RoleModel) *entity.Role {
	if m == nil {
		return nil
	}

	return &entity.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromRoleDomain maps a domain entity to a persistence model.
func FromRoleDomain(r *entity.Role) *RoleModel {
	return &RoleModel{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToPermissionDomain maps a persistence model to a domain entity.
func ToPermissionDomain(m *PermissionModel) *entity.Permission {
	if m == nil {
		return nil
	}

	return &entity.Permission{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Resource:    m.Resource,
		Action:      m.Action,
		CreatedAt:   m.CreatedAt,
	}
}

// FromPermissionDomain maps a domain entity to a persistence model.
func FromPermissionDomain(p *entity.Permission) *PermissionModel {
	return &PermissionModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Resource:    p.Resource,
		Action:      p.Action,
		CreatedAt:   p.CreatedAt,
	}
}

// ToRefreshTokenDomain maps a persistence model to a domain entity.
func ToRefreshTokenDomain(m *RefreshTokenModel) *entity.RefreshToken {
	if m == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		Revoked:   m.Revoked,
		CreatedAt: m.CreatedAt,
	}
}

// FromRefreshTokenDomain maps a domain entity to a persistence model.
func FromRefreshTokenDomain(t *entity.RefreshToken) *RefreshTokenModel {
	return &RefreshTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
		CreatedAt: t.CreatedAt,
	}
}

// ToRoleDomains maps a slice of models.
func ToRoleDomains(ms []*RoleModel) []*entity.Role {
	out := make([]*entity.Role, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToRoleDomain(m))
	}

	return out
}

// ToPermissionDomains maps a slice of models.
func ToPermissionDomains(ms []*PermissionModel) []*entity.Permission {
	out := make([]*entity.Permission, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPermissionDomain(m))
	}

	return out
}
