package repo

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/config"
	"github.com/MKuranov/car_market/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// one in-memory database per test, one connection so it stays visible
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// seedCar creates the ten reference rows and a car wired to them.
func seedCar(t *testing.T, db *gorm.DB, brandName, vin string) *models.Car {
	t.Helper()

	brand := models.Brand{Lookup: models.Lookup{Name: brandName}}
	model := models.CarModel{Lookup: models.Lookup{Name: "Camry"}}
	category := models.Category{Lookup: models.Lookup{Name: "Passenger"}}
	body := models.Body{Lookup: models.Lookup{Name: "Sedan"}}
	engine := models.Engine{Lookup: models.Lookup{Name: "2.5 AT"}}
	transmission := models.TransmissionType{Lookup: models.Lookup{Name: "Automatic"}}
	drive := models.DriveType{Lookup: models.Lookup{Name: "FWD"}}
	color := models.CarColor{Lookup: models.Lookup{Name: "White"}}
	fuel := models.FuelType{Lookup: models.Lookup{Name: "Petrol"}}
	wheelSide := models.WheelSide{Lookup: models.Lookup{Name: "Left"}}

	require.NoError(t, db.Create(&brand).Error)
	require.NoError(t, db.Create(&model).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&body).Error)
	require.NoError(t, db.Create(&engine).Error)
	require.NoError(t, db.Create(&transmission).Error)
	require.NoError(t, db.Create(&drive).Error)
	require.NoError(t, db.Create(&color).Error)
	require.NoError(t, db.Create(&fuel).Error)
	require.NoError(t, db.Create(&wheelSide).Error)

	car := models.Car{
		VIN:                vin,
		Mileage:            150000,
		YearOfManufacture:  2015,
		CountOwners:        2,
		BrandID:            brand.ID,
		ModelID:            model.ID,
		CategoryID:         category.ID,
		BodyID:             body.ID,
		EngineID:           engine.ID,
		TransmissionTypeID: transmission.ID,
		DriveTypeID:        drive.ID,
		CarColorID:         color.ID,
		FuelTypeID:         fuel.ID,
		WheelSideID:        wheelSide.ID,
	}
	require.NoError(t, db.Create(&car).Error)
	return &car
}

func seedUser(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()

	user := models.User{Login: login, Password: "secret", Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPost(t *testing.T, db *gorm.DB, car *models.Car, user *models.User, status string, createdAt time.Time) *models.Post {
	t.Helper()

	post := models.Post{
		Status:      status,
		Description: "well kept",
		CreatedAt:   createdAt,
		Price:       1000000.00,
		CarID:       car.ID,
		UserID:      user.ID,
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}
