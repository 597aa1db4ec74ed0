package models

import (
	"time"
)

const (
	PostStatusActive = "active"
	PostStatusSold   = "sold"
)

// Lookup is the shared shape of the reference tables (brand, body,
// engine and so on): an id and a display name, nothing else.
type Lookup struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

func (l *Lookup) Rename(name string) {
	l.Name = name
}

type Brand struct{ Lookup }

type CarModel struct{ Lookup }

type Category struct{ Lookup }

type Body struct{ Lookup }

type Engine struct{ Lookup }

type TransmissionType struct{ Lookup }

type DriveType struct{ Lookup }

type CarColor struct{ Lookup }

type FuelType struct{ Lookup }

type WheelSide struct{ Lookup }

type Car struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"       json:"id"`
	VIN               string `gorm:"column:vin;size:17;uniqueIndex" json:"vin"`
	Mileage           int64  `json:"mileage"`
	YearOfManufacture int64  `json:"year_of_manufacture"`
	CountOwners       int64  `json:"count_owners"`

	BrandID            uint             `gorm:"not null" json:"brand_id"`
	Brand              Brand            `json:"brand"`
	ModelID            uint             `gorm:"not null" json:"model_id"`
	Model              CarModel         `json:"model"`
	CategoryID         uint             `gorm:"not null" json:"category_id"`
	Category           Category         `json:"category"`
	BodyID             uint             `gorm:"not null" json:"body_id"`
	Body               Body             `json:"body"`
	EngineID           uint             `gorm:"not null" json:"engine_id"`
	Engine             Engine           `json:"engine"`
	TransmissionTypeID uint             `gorm:"not null" json:"transmission_type_id"`
	TransmissionType   TransmissionType `json:"transmission_type"`
	DriveTypeID        uint             `gorm:"not null" json:"drive_type_id"`
	DriveType          DriveType        `json:"drive_type"`
	CarColorID         uint             `gorm:"not null" json:"car_color_id"`
	CarColor           CarColor         `json:"car_color"`
	FuelTypeID         uint             `gorm:"not null" json:"fuel_type_id"`
	FuelType           FuelType         `json:"fuel_type"`
	WheelSideID        uint             `gorm:"not null" json:"wheel_side_id"`
	WheelSide          WheelSide        `json:"wheel_side"`
}

type Post struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Status      string    `gorm:"size:6;not null"          json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Price       float64   `gorm:"not null"                 json:"price"`

	CarID  uint `gorm:"not null" json:"car_id"`
	Car    Car  `json:"car"`
	UserID uint `gorm:"not null" json:"user_id"`
	User   User `json:"user"`

	Photos []PostPhoto `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"photos"`
}

type PostPhoto struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PhotoPath string `gorm:"not null"                 json:"photo_path"`
	PostID    uint   `gorm:"index;not null"           json:"post_id"`
}

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Login    string `gorm:"unique;not null"          json:"login"`
	Password string `gorm:"not null"                 json:"-"`
	Name     string `json:"name"`
}
