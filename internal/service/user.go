package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/repo"
)

type UserService struct {
	Repo *repo.UserRepo
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{Repo: repo.NewUserRepo(db)}
}

func (s *UserService) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return s.Repo.Create(ctx, u)
}

func (s *UserService) FindByID(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserService) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.Repo.FindByLogin(ctx, login)
}

func (s *UserService) FindByLoginAndPassword(ctx context.Context, login, password string) (*models.User, error) {
	return s.Repo.FindByLoginAndPassword(ctx, login, password)
}
