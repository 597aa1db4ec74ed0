package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MKuranov/car_market/internal/models"
)

// carAssociations are eagerly loaded by FindByID so a car is usable
// after the request-scoped session is gone.
var carAssociations = []string{
	"Brand",
	"Model",
	"Category",
	"Body",
	"Engine",
	"TransmissionType",
	"DriveType",
	"CarColor",
	"FuelType",
	"WheelSide",
}

type CarRepo struct {
	DB *gorm.DB
}

func NewCarRepo(db *gorm.DB) *CarRepo {
	return &CarRepo{DB: db}
}

func (r *CarRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := r.DB.WithContext(ctx).Create(car).Error; err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarRepo) Update(ctx context.Context, car *models.Car) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(car).Error
}

func (r *CarRepo) Delete(ctx context.Context, id int) error {
	return r.DB.WithContext(ctx).Delete(&models.Car{}, id).Error
}

func (r *CarRepo) FindByID(ctx context.Context, id int) (*models.Car, error) {
	q := r.DB.WithContext(ctx)
	for _, assoc := range carAssociations {
		q = q.Preload(assoc)
	}
	var car models.Car
	if err := q.First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// FindAllOrderByID returns cars without their associations loaded.
func (r *CarRepo) FindAllOrderByID(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}
