package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExist   = errors.New("user already exists")
)

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create registers a user. A duplicate login is reported as
// ErrUserAlreadyExist instead of the raw constraint violation.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	tx := r.DB.WithContext(ctx).Where("login = ?", u.Login).FirstOrCreate(u)
	if tx.Error != nil {
		// two registrations can race past the read; the loser then hits
		// the unique index instead of the RowsAffected check
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExist
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrUserAlreadyExist
	}
	return u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLoginAndPassword compares the stored password as plaintext.
// That matches the existing deployment and its data; see DESIGN.md
// before changing it.
func (r *UserRepo) FindByLoginAndPassword(ctx context.Context, login, password string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("login = ? AND password = ?", login, password).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}
