package repositories

import (
	"time"

	"monitoreo-server/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Condition narrows a query; conditions compose left to right.
type Condition func(tx *gorm.DB) *gorm.DB

// LifecycleRepository is the soft-delete store, parameterized over the
// entity type. Delete tombstones, HardDelete removes physically, ListLive
// is the default view every business query goes through; ListAll is
// reserved for audit and admin tooling.
type LifecycleRepository[T any] struct {
	db db.Database
}

func NewLifecycleRepository[T any](database db.Database) *LifecycleRepository[T] {
	return &LifecycleRepository[T]{db: database}
}

// WithTx binds the repository to an open transaction.
func (r *LifecycleRepository[T]) WithTx(tx *gorm.DB) *LifecycleRepository[T] {
	return &LifecycleRepository[T]{db: &db.GormDatabase{DB: tx}}
}

func (r *LifecycleRepository[T]) Create(entity *T) error {
	return r.db.GetDB().Create(entity).Error
}

func (r *LifecycleRepository[T]) GetByID(id string, conds ...Condition) (*T, error) {
	var entity T
	tx := r.db.GetDB().Model(new(T)).Where(idEquals(id))
	for _, c := range conds {
		tx = c(tx)
	}
	if err := tx.First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIDAny also matches tombstoned rows; restore and audit paths use it.
func (r *LifecycleRepository[T]) GetByIDAny(id string, conds ...Condition) (*T, error) {
	var entity T
	tx := r.db.GetDB().Unscoped().Model(new(T)).Where(idEquals(id))
	for _, c := range conds {
		tx = c(tx)
	}
	if err := tx.First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *LifecycleRepository[T]) ListLive(conds ...Condition) ([]T, error) {
	return r.list(r.db.GetDB(), conds)
}

func (r *LifecycleRepository[T]) ListAll(conds ...Condition) ([]T, error) {
	return r.list(r.db.GetDB().Unscoped(), conds)
}

func (r *LifecycleRepository[T]) list(tx *gorm.DB, conds []Condition) ([]T, error) {
	var out []T
	tx = tx.Model(new(T))
	for _, c := range conds {
		tx = c(tx)
	}
	err := tx.Order(clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: "created_at"},
		Desc:   true,
	}).Find(&out).Error
	return out, err
}

func (r *LifecycleRepository[T]) Update(entity *T) error {
	return r.db.GetDB().Save(entity).Error
}

// Delete tombstones the row. It always stamps a fresh deleted_at, so
// deleting an already tombstoned row refreshes the timestamp instead of
// erroring (idempotent).
func (r *LifecycleRepository[T]) Delete(id string) error {
	return r.db.GetDB().Unscoped().Model(new(T)).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// HardDelete removes the row physically; FK cascades take dependent
// children with it. Irreversible, privileged maintenance only.
func (r *LifecycleRepository[T]) HardDelete(id string) error {
	return r.db.GetDB().Unscoped().Where("id = ?", id).Delete(new(T)).Error
}

// Restore clears the tombstone. Restoring a live row is a no-op success.
func (r *LifecycleRepository[T]) Restore(id string) error {
	return r.db.GetDB().Unscoped().Model(new(T)).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// idEquals qualifies the id column with the model table so conditions that
// join through devices stay unambiguous.
func idEquals(id string) clause.Eq {
	return clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "id"},
		Value:  id,
	}
}
