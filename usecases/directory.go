package usecases

import (
	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/repositories"

	"gorm.io/gorm"
)

// DirectoryUseCase serves the user-administration surface: the users of
// the acting user's organization, their role assignments, and the
// organization record itself. Users are not soft deleted; a tenant sees
// exactly the accounts whose profile points at its organization.
type DirectoryUseCase struct {
	db    db.Database
	scope *TenantScope
	users repositories.UserRepository
}

func NewDirectoryUseCase(database db.Database, scope *TenantScope, users repositories.UserRepository) *DirectoryUseCase {
	return &DirectoryUseCase{db: database, scope: scope, users: users}
}

// ListUsers returns the accounts of the acting user's organization, roles
// preloaded. Superusers see every account.
func (uc *DirectoryUseCase) ListUsers(actor *entities.User) ([]entities.User, error) {
	tx := uc.db.GetDB().Model(&entities.User{}).Preload("Roles").Order("users.email")
	if actor == nil || !actor.IsSuperuser {
		org, err := uc.scope.ResolveOrganization(actor)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return []entities.User{}, nil
		}
		tx = tx.Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
			Where("user_profiles.organization_id = ?", org.ID)
	}
	var users []entities.User
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one account if it is visible to the actor.
func (uc *DirectoryUseCase) GetUser(actor *entities.User, id string) (*entities.User, error) {
	if err := uc.requireVisible(actor, id); err != nil {
		return nil, err
	}
	var user entities.User
	if err := uc.db.GetDB().Preload("Roles").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// AssignRole attaches a named role to a visible account.
func (uc *DirectoryUseCase) AssignRole(actor *entities.User, id, roleName string) error {
	if err := uc.requireVisible(actor, id); err != nil {
		return err
	}
	if err := uc.users.AssignRole(id, roleName); err != nil {
		return translate(err)
	}
	return nil
}

// GetOrganization returns the acting user's organization record.
func (uc *DirectoryUseCase) GetOrganization(actor *entities.User) (*entities.Organization, error) {
	org, err := uc.scope.ResolveOrganization(actor)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrNotFound
	}
	return org, nil
}

// UpdateOrganization edits the acting user's organization.
func (uc *DirectoryUseCase) UpdateOrganization(actor *entities.User, payload *entities.Organization) (*entities.Organization, error) {
	org, err := uc.GetOrganization(actor)
	if err != nil {
		return nil, err
	}
	if payload.Email != "" && !emailPattern.MatchString(payload.Email) {
		return nil, validationErrorf("invalid organization email address")
	}
	err = uc.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if payload.Name != "" {
			org.Name = payload.Name
		}
		if payload.Email != "" {
			org.Email = payload.Email
		}
		return tx.Save(org).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return org, nil
}

// ListOrganizations returns every tenant including tombstoned ones, for
// the superuser maintenance surface.
func (uc *DirectoryUseCase) ListOrganizations(actor *entities.User) ([]entities.Organization, error) {
	return ScopedListAll[entities.Organization](uc.scope, actor)
}

// requireVisible reports ErrNotFound unless the target account belongs to
// the actor's organization. Cross-tenant accounts look exactly like
// missing ones.
func (uc *DirectoryUseCase) requireVisible(actor *entities.User, id string) error {
	if actor != nil && actor.IsSuperuser {
		var n int64
		if err := uc.db.GetDB().Model(&entities.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}
	org, err := uc.scope.ResolveOrganization(actor)
	if err != nil {
		return err
	}
	if org == nil {
		return ErrNotFound
	}
	var n int64
	err = uc.db.GetDB().Model(&entities.UserProfile{}).
		Where("user_id = ? AND organization_id = ?", id, org.ID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
