// Package service holds the pass-through façades between the HTTP
// handlers and the repositories. They add no behavior on purpose: the
// layering mirrors the rest of the codebase and keeps a place for
// business rules if they ever show up.
package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/repo"
)

type ReferenceService[T any] struct {
	Repo *repo.ReferenceRepo[T]
}

func NewReferenceService[T any](db *gorm.DB) *ReferenceService[T] {
	return &ReferenceService[T]{Repo: repo.NewReferenceRepo[T](db)}
}

func (s *ReferenceService[T]) Create(ctx context.Context, e *T) (*T, error) {
	return s.Repo.Create(ctx, e)
}

func (s *ReferenceService[T]) Update(ctx context.Context, e *T) error {
	return s.Repo.Update(ctx, e)
}

func (s *ReferenceService[T]) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *ReferenceService[T]) FindByID(ctx context.Context, id int) (*T, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ReferenceService[T]) FindAllOrderByID(ctx context.Context) ([]T, error) {
	return s.Repo.FindAllOrderByID(ctx)
}
