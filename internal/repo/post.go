package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MKuranov/car_market/internal/models"
)

type PostRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{DB: db}
}

func (r *PostRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := r.DB.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Update writes the post columns only; loaded associations are left
// alone.
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

// Delete removes a post together with its photo rows. Deleting a
// missing id is a no-op.
func (r *PostRepo) Delete(ctx context.Context, id int) error {
	return r.DB.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Post{ID: uint(id)}).Error
}

// FindByID is the richest query in the system: the post, its car with
// all ten reference associations, the owner and the photos are loaded
// in one go.
func (r *PostRepo) FindByID(ctx context.Context, id int) (*models.Post, error) {
	q := r.DB.WithContext(ctx).
		Preload("Car").
		Preload("User").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_photos.id ASC")
		})
	for _, assoc := range carAssociations {
		q = q.Preload("Car." + assoc)
	}

	var post models.Post
	if err := q.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindActiveOrderByCreatedAtDesc returns a page of active posts,
// newest first, with the brand, model and photos needed by the feed.
func (r *PostRepo) FindActiveOrderByCreatedAtDesc(ctx context.Context, offset, limit int) (int64, []models.Post, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Post{}).
		Where("status = ?", models.PostStatusActive).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var posts []models.Post
	if err := r.feedQuery(ctx).
		Where("status = ?", models.PostStatusActive).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return 0, nil, err
	}

	return total, posts, nil
}

func (r *PostRepo) FindByUserID(ctx context.Context, userID int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindForLastDay returns posts created within the last 24 hours.
func (r *PostRepo) FindForLastDay(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Where("created_at > ?", time.Now().Add(-24*time.Hour)).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindWithPhotos returns only posts that have at least one photo row.
func (r *PostRepo) FindWithPhotos(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Where("EXISTS (SELECT 1 FROM post_photos pp WHERE pp.post_id = posts.id)").
		Order("posts.id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByBrand matches the brand name by substring with plain LIKE:
// case sensitive on postgres, case insensitive on sqlite. Only the
// postgres behavior is the contract.
func (r *PostRepo) FindByBrand(ctx context.Context, brand string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Select("posts.*").
		Joins("JOIN cars ON cars.id = posts.car_id").
		Joins("JOIN brands ON brands.id = cars.brand_id").
		Where("brands.name LIKE ?", "%"+brand+"%").
		Order("posts.id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepo) feedQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&models.Post{}).
		Preload("Car.Brand").
		Preload("Car.Model").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_photos.id ASC")
		})
}
