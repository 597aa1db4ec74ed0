package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/models"
)

type Config struct {
	HTTP_ADDR     string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	UPLOAD_DIR    string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:     getEnv("HTTP_ADDR", ":8080"),
		DB_HOST:       getEnv("DB_HOST", "localhost"),
		DB_PORT:       getEnv("DB_PORT", "5432"),
		DB_USER:       getEnv("DB_USER", "postgres"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       getEnv("DB_NAME", "car_market"),
		UPLOAD_DIR:    getEnv("UPLOAD_DIR", "uploads/images"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:     getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() (*gorm.DB, error) {
	configuration, _ := LoadConfig()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER,
		configuration.DB_PASSWORD,
		configuration.DB_HOST,
		configuration.DB_PORT,
		configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("cannot run migrations: %w", err)
	}
	return db, nil
}

// Migrate creates the whole schema: the ten lookup tables first, then
// the tables referencing them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Brand{},
		&models.CarModel{},
		&models.Category{},
		&models.Body{},
		&models.Engine{},
		&models.TransmissionType{},
		&models.DriveType{},
		&models.CarColor{},
		&models.FuelType{},
		&models.WheelSide{},
		&models.User{},
		&models.Car{},
		&models.Post{},
		&models.PostPhoto{},
	)
}
