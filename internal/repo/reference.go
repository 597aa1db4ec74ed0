package repo

import (
	"context"

	"gorm.io/gorm"
)

// ReferenceRepo is the CRUD template shared by all ten lookup tables.
// Every variant behaves identically: delete and update on a missing id
// are silent no-ops, findById on id <= 0 or a missing row yields
// gorm.ErrRecordNotFound.
type ReferenceRepo[T any] struct {
	DB *gorm.DB
}

func NewReferenceRepo[T any](db *gorm.DB) *ReferenceRepo[T] {
	return &ReferenceRepo[T]{DB: db}
}

func (r *ReferenceRepo[T]) Create(ctx context.Context, e *T) (*T, error) {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ReferenceRepo[T]) Update(ctx context.Context, e *T) error {
	return r.DB.WithContext(ctx).Save(e).Error
}

func (r *ReferenceRepo[T]) Delete(ctx context.Context, id int) error {
	var e T
	return r.DB.WithContext(ctx).Delete(&e, id).Error
}

func (r *ReferenceRepo[T]) FindByID(ctx context.Context, id int) (*T, error) {
	var e T
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ReferenceRepo[T]) FindAllOrderByID(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
