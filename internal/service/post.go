package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/repo"
)

type PostService struct {
	Repo *repo.PostRepo
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{Repo: repo.NewPostRepo(db)}
}

func (s *PostService) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	return s.Repo.Create(ctx, post)
}

func (s *PostService) Update(ctx context.Context, post *models.Post) error {
	return s.Repo.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *PostService) FindByID(ctx context.Context, id int) (*models.Post, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *PostService) FindActiveOrderByCreatedAtDesc(ctx context.Context, offset, limit int) (int64, []models.Post, error) {
	return s.Repo.FindActiveOrderByCreatedAtDesc(ctx, offset, limit)
}

func (s *PostService) FindByUserID(ctx context.Context, userID int) ([]models.Post, error) {
	return s.Repo.FindByUserID(ctx, userID)
}

func (s *PostService) FindForLastDay(ctx context.Context) ([]models.Post, error) {
	return s.Repo.FindForLastDay(ctx)
}

func (s *PostService) FindWithPhotos(ctx context.Context) ([]models.Post, error) {
	return s.Repo.FindWithPhotos(ctx)
}

func (s *PostService) FindByBrand(ctx context.Context, brand string) ([]models.Post, error) {
	return s.Repo.FindByBrand(ctx, brand)
}
