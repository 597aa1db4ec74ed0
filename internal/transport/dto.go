package transport

// PostCreationRequest carries the multipart listing form: the car
// fields, the ten reference ids picked from the dropdowns and the post
// fields. Photo files travel separately in the multipart body.
type PostCreationRequest struct {
	VIN               string `form:"vin"`
	Mileage           int64  `form:"mileage"`
	YearOfManufacture int64  `form:"yearOfManufacture"`
	CountOwners       int64  `form:"countOwners"`

	BrandID            int `form:"brandId"`
	ModelID            int `form:"modelId"`
	CategoryID         int `form:"categoryId"`
	BodyID             int `form:"bodyId"`
	EngineID           int `form:"engineId"`
	TransmissionTypeID int `form:"transmissionTypeId"`
	DriveTypeID        int `form:"driveTypeId"`
	CarColorID         int `form:"carColorId"`
	FuelTypeID         int `form:"fuelTypeId"`
	WheelSideID        int `form:"wheelSideId"`

	Description string  `form:"description"`
	Price       float64 `form:"price"`
}

type ReferenceRequest struct {
	Name string `json:"name"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
