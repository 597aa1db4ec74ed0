package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/repo"
)

type PostPhotoService struct {
	Repo *repo.PostPhotoRepo
}

func NewPostPhotoService(db *gorm.DB) *PostPhotoService {
	return &PostPhotoService{Repo: repo.NewPostPhotoRepo(db)}
}

func (s *PostPhotoService) Create(ctx context.Context, photo *models.PostPhoto) (*models.PostPhoto, error) {
	return s.Repo.Create(ctx, photo)
}

func (s *PostPhotoService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *PostPhotoService) FindByPostID(ctx context.Context, postID int) ([]models.PostPhoto, error) {
	return s.Repo.FindByPostID(ctx, postID)
}
