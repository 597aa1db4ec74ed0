package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
)

type PostPhotoRepo struct {
	DB *gorm.DB
}

func NewPostPhotoRepo(db *gorm.DB) *PostPhotoRepo {
	return &PostPhotoRepo{DB: db}
}

func (r *PostPhotoRepo) Create(ctx context.Context, photo *models.PostPhoto) (*models.PostPhoto, error) {
	if err := r.DB.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

func (r *PostPhotoRepo) Delete(ctx context.Context, id int) error {
	return r.DB.WithContext(ctx).Delete(&models.PostPhoto{}, id).Error
}

func (r *PostPhotoRepo) FindByPostID(ctx context.Context, postID int) ([]models.PostPhoto, error) {
	var photos []models.PostPhoto
	if err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
