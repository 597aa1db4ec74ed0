package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/config"
	authmw "github.com/MKuranov/car_market/internal/middleware/auth"
	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/service"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	DB      *gorm.DB
	Post    *PostHandler
	Auth    *AuthHandler
	Session *authmw.SessionMiddleware
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	jwtSecret := []byte("test-jwt-secret")
	users := service.NewUserService(db)

	env := &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		Post: &PostHandler{
			Posts:         service.NewPostService(db),
			Cars:          service.NewCarService(db),
			Photos:        service.NewPostPhotoService(db),
			Brands:        service.NewReferenceService[models.Brand](db),
			Models:        service.NewReferenceService[models.CarModel](db),
			Categories:    service.NewReferenceService[models.Category](db),
			Bodies:        service.NewReferenceService[models.Body](db),
			Engines:       service.NewReferenceService[models.Engine](db),
			Transmissions: service.NewReferenceService[models.TransmissionType](db),
			Drives:        service.NewReferenceService[models.DriveType](db),
			Colors:        service.NewReferenceService[models.CarColor](db),
			Fuels:         service.NewReferenceService[models.FuelType](db),
			WheelSides:    service.NewReferenceService[models.WheelSide](db),
			UploadDir:     t.TempDir(),
		},
		Auth:    &AuthHandler{Users: users, JWTSecret: jwtSecret},
		Session: &authmw.SessionMiddleware{Users: users, JWTSecret: jwtSecret},
	}
	return env
}

type referenceIDs struct {
	Brand        uint
	Model        uint
	Category     uint
	Body         uint
	Engine       uint
	Transmission uint
	Drive        uint
	Color        uint
	Fuel         uint
	WheelSide    uint
}

func (env *testEnv) seedReferences() referenceIDs {
	env.T.Helper()

	brand := models.Brand{Lookup: models.Lookup{Name: "Toyota"}}
	model := models.CarModel{Lookup: models.Lookup{Name: "Camry"}}
	category := models.Category{Lookup: models.Lookup{Name: "Passenger"}}
	body := models.Body{Lookup: models.Lookup{Name: "Sedan"}}
	engine := models.Engine{Lookup: models.Lookup{Name: "2.5 AT"}}
	transmission := models.TransmissionType{Lookup: models.Lookup{Name: "Automatic"}}
	drive := models.DriveType{Lookup: models.Lookup{Name: "FWD"}}
	color := models.CarColor{Lookup: models.Lookup{Name: "White"}}
	fuel := models.FuelType{Lookup: models.Lookup{Name: "Petrol"}}
	wheelSide := models.WheelSide{Lookup: models.Lookup{Name: "Left"}}

	for _, e := range []any{
		&brand, &model, &category, &body, &engine,
		&transmission, &drive, &color, &fuel, &wheelSide,
	} {
		require.NoError(env.T, env.DB.Create(e).Error)
	}

	return referenceIDs{
		Brand:        brand.ID,
		Model:        model.ID,
		Category:     category.ID,
		Body:         body.ID,
		Engine:       engine.ID,
		Transmission: transmission.ID,
		Drive:        drive.ID,
		Color:        color.ID,
		Fuel:         fuel.ID,
		WheelSide:    wheelSide.ID,
	}
}

func (env *testEnv) seedUser(login string) *models.User {
	env.T.Helper()

	user := models.User{Login: login, Password: "secret", Name: "Test User"}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

// creationFormFields builds the multipart field set for a valid listing.
func creationFormFields(refs referenceIDs, vin string) map[string]string {
	return map[string]string{
		"vin":                vin,
		"mileage":            "150000",
		"yearOfManufacture":  "2015",
		"countOwners":        "2",
		"brandId":            fmt.Sprint(refs.Brand),
		"modelId":            fmt.Sprint(refs.Model),
		"categoryId":         fmt.Sprint(refs.Category),
		"bodyId":             fmt.Sprint(refs.Body),
		"engineId":           fmt.Sprint(refs.Engine),
		"transmissionTypeId": fmt.Sprint(refs.Transmission),
		"driveTypeId":        fmt.Sprint(refs.Drive),
		"carColorId":         fmt.Sprint(refs.Color),
		"fuelTypeId":         fmt.Sprint(refs.Fuel),
		"wheelSideId":        fmt.Sprint(refs.WheelSide),
		"description":        "well kept, one accident",
		"price":              "1000000.00",
	}
}

// doMultipartRequest builds a multipart POST and an echo context for it.
func (env *testEnv) doMultipartRequest(target string, fields map[string]string, photos map[string][]byte) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	for name, content := range photos {
		fw, err := w.CreateFormFile("photos", name)
		require.NoError(env.T, err)
		_, err = fw.Write(content)
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doJSONRequest(method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) login(c echo.Context, user *models.User) {
	c.Set("user", user)
}
