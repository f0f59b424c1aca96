package usecases

import (
	"errors"

	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/repositories"

	"gorm.io/gorm"
)

// TenantScope derives the acting user's organization and narrows every
// query and mutation to it. Superusers bypass the filter entirely; a user
// with no resolvable organization gets the empty tenant, never a default
// one and never another tenant's rows.
type TenantScope struct {
	db    db.Database
	users repositories.UserRepository
}

func NewTenantScope(database db.Database, users repositories.UserRepository) *TenantScope {
	return &TenantScope{db: database, users: users}
}

// ResolveOrganization returns nil without error only when the profile or
// its organization is genuinely absent. Store failures propagate; they
// must not silently collapse into "no organization".
func (s *TenantScope) ResolveOrganization(user *entities.User) (*entities.Organization, error) {
	if user == nil {
		return nil, nil
	}
	profile, err := s.users.GetProfileByUserID(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if profile.OrganizationID == "" {
		return nil, nil
	}
	var org entities.Organization
	if err := s.db.GetDB().Where("id = ?", profile.OrganizationID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

// scopeCondition builds the tenant filter for one entity type. ok=false
// means the empty-tenant branch: reads yield nothing, mutations NotFound.
func scopeCondition[T entities.TenantScoped](s *TenantScope, user *entities.User) (cond repositories.Condition, ok bool, err error) {
	if user != nil && user.IsSuperuser {
		return func(tx *gorm.DB) *gorm.DB { return tx }, true, nil
	}
	org, err := s.ResolveOrganization(user)
	if err != nil {
		return nil, false, err
	}
	if org == nil {
		return nil, false, nil
	}
	var zero T
	return func(tx *gorm.DB) *gorm.DB {
		return zero.ScopeByOrganization(tx, org.ID)
	}, true, nil
}

// ScopedList returns the live rows visible to the acting user.
func ScopedList[T entities.TenantScoped](s *TenantScope, user *entities.User, conds ...repositories.Condition) ([]T, error) {
	cond, ok, err := scopeCondition[T](s, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	repo := repositories.NewLifecycleRepository[T](s.db)
	return repo.ListLive(append([]repositories.Condition{cond}, conds...)...)
}

// ScopedListAll includes tombstoned rows; audit and admin tooling only.
func ScopedListAll[T entities.TenantScoped](s *TenantScope, user *entities.User, conds ...repositories.Condition) ([]T, error) {
	cond, ok, err := scopeCondition[T](s, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	repo := repositories.NewLifecycleRepository[T](s.db)
	return repo.ListAll(append([]repositories.Condition{cond}, conds...)...)
}

// ScopedCount counts live rows under the acting user's scope.
func ScopedCount[T entities.TenantScoped](s *TenantScope, user *entities.User, conds ...repositories.Condition) (int64, error) {
	cond, ok, err := scopeCondition[T](s, user)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	var zero T
	tx := cond(s.db.GetDB().Model(&zero))
	for _, c := range conds {
		tx = c(tx)
	}
	var n int64
	err = tx.Count(&n).Error
	return n, err
}

// ScopedGet fetches one live row by id under the acting user's scope.
func ScopedGet[T entities.TenantScoped](s *TenantScope, user *entities.User, id string) (*T, error) {
	cond, ok, err := scopeCondition[T](s, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	repo := repositories.NewLifecycleRepository[T](s.db)
	entity, err := repo.GetByID(id, cond)
	if err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

// ScopedCreate persists a new entity, stamping the resolved organization
// over whatever the client supplied. Entities owned by a device instead
// require that device to be visible under the same scope. Superusers keep
// the payload's organization as-is.
func ScopedCreate[T entities.TenantScoped](s *TenantScope, user *entities.User, entity *T) (*T, error) {
	var orgID string
	if user == nil || !user.IsSuperuser {
		org, err := s.ResolveOrganization(user)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, ErrPermissionDenied
		}
		orgID = org.ID
	}
	err := s.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if orgID != "" {
			if owned, isOwned := any(entity).(entities.TenantOwned); isOwned {
				owned.SetOrganization(orgID)
			}
		}
		if owned, isOwned := any(entity).(entities.DeviceOwned); isOwned {
			if owned.OwningDeviceID() == "" {
				return validationErrorf("device_id is required")
			}
			if err := deviceVisible(tx, owned.OwningDeviceID(), orgID); err != nil {
				return err
			}
		}
		return tx.Create(entity).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

// ScopedUpdate re-fetches the target under the tenant filter, applies the
// mutation and persists it atomically. Rows outside the scope, including
// rows that exist under another tenant, report ErrNotFound.
func ScopedUpdate[T entities.TenantScoped](s *TenantScope, user *entities.User, id string, apply func(existing *T)) (*T, error) {
	cond, ok, err := scopeCondition[T](s, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	var out *T
	err = s.db.GetDB().Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewLifecycleRepository[T](s.db).WithTx(tx)
		existing, err := repo.GetByID(id, cond)
		if err != nil {
			return translate(err)
		}
		apply(existing)
		if err := repo.Update(existing); err != nil {
			return translate(err)
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScopedDelete tombstones a visible row. Deleting an already tombstoned
// row refreshes its deleted_at and succeeds.
func ScopedDelete[T entities.TenantScoped](s *TenantScope, user *entities.User, id string) error {
	return scopedLifecycleOp[T](s, user, id, func(repo *repositories.LifecycleRepository[T]) error {
		return repo.Delete(id)
	})
}

// ScopedRestore clears the tombstone of a visible row; restoring a live
// row is a no-op success.
func ScopedRestore[T entities.TenantScoped](s *TenantScope, user *entities.User, id string) error {
	return scopedLifecycleOp[T](s, user, id, func(repo *repositories.LifecycleRepository[T]) error {
		return repo.Restore(id)
	})
}

// ScopedHardDelete removes the row and its cascade-dependent children
// permanently. Privileged maintenance paths only.
func ScopedHardDelete[T entities.TenantScoped](s *TenantScope, user *entities.User, id string) error {
	return scopedLifecycleOp[T](s, user, id, func(repo *repositories.LifecycleRepository[T]) error {
		return repo.HardDelete(id)
	})
}

// scopedLifecycleOp re-fetches the target (tombstoned or live) under the
// tenant filter before running the lifecycle mutation in a transaction.
func scopedLifecycleOp[T entities.TenantScoped](s *TenantScope, user *entities.User, id string, op func(repo *repositories.LifecycleRepository[T]) error) error {
	cond, ok, err := scopeCondition[T](s, user)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.db.GetDB().Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewLifecycleRepository[T](s.db).WithTx(tx)
		if _, err := repo.GetByIDAny(id, cond); err != nil {
			return translate(err)
		}
		return op(repo)
	})
}

// deviceVisible checks that the parent device is live and, when orgID is
// set, belongs to that organization.
func deviceVisible(tx *gorm.DB, deviceID, orgID string) error {
	q := tx.Model(&entities.Device{}).Where("devices.id = ?", deviceID)
	if orgID != "" {
		q = entities.Device{}.ScopeByOrganization(q, orgID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
