package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/repo"
)

type CarService struct {
	Repo *repo.CarRepo
}

func NewCarService(db *gorm.DB) *CarService {
	return &CarService{Repo: repo.NewCarRepo(db)}
}

func (s *CarService) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	return s.Repo.Create(ctx, car)
}

func (s *CarService) Update(ctx context.Context, car *models.Car) error {
	return s.Repo.Update(ctx, car)
}

func (s *CarService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *CarService) FindByID(ctx context.Context, id int) (*models.Car, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CarService) FindAllOrderByID(ctx context.Context) ([]models.Car, error) {
	return s.Repo.FindAllOrderByID(ctx)
}
