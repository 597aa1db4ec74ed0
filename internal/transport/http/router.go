package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MKuranov/car_market/internal/handlers"
	authmw "github.com/MKuranov/car_market/internal/middleware/auth"
	"github.com/MKuranov/car_market/internal/models"
)

type ReferenceHandlers struct {
	Brands        *handlers.ReferenceHTTP[models.Brand, *models.Brand]
	Models        *handlers.ReferenceHTTP[models.CarModel, *models.CarModel]
	Categories    *handlers.ReferenceHTTP[models.Category, *models.Category]
	Bodies        *handlers.ReferenceHTTP[models.Body, *models.Body]
	Engines       *handlers.ReferenceHTTP[models.Engine, *models.Engine]
	Transmissions *handlers.ReferenceHTTP[models.TransmissionType, *models.TransmissionType]
	Drives        *handlers.ReferenceHTTP[models.DriveType, *models.DriveType]
	Colors        *handlers.ReferenceHTTP[models.CarColor, *models.CarColor]
	Fuels         *handlers.ReferenceHTTP[models.FuelType, *models.FuelType]
	WheelSides    *handlers.ReferenceHTTP[models.WheelSide, *models.WheelSide]
}

type Deps struct {
	PostHandler   *handlers.PostHandler
	AuthHandler   *handlers.AuthHandler
	SearchHandler *handlers.SearchHandler
	Reference     *ReferenceHandlers
	Session       *authmw.SessionMiddleware
	UploadDir     string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(d.Session.LoadUser)

	e.Static("/uploads", d.UploadDir)

	e.GET("/", d.PostHandler.Index)
	e.GET("/index", d.PostHandler.Index)
	e.GET("/search", d.SearchHandler.Search)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut)

	post := e.Group("/post")
	post.GET("/createPost", d.PostHandler.CreateForm)
	post.POST("/createPost", d.PostHandler.Create)
	post.GET("/my", d.PostHandler.My, d.Session.RequireLogin)
	post.GET("/lastDay", d.PostHandler.LastDay)
	post.GET("/withPhotos", d.PostHandler.WithPhotos)
	post.GET("/byBrand", d.PostHandler.ByBrand)
	post.GET("/:id", d.PostHandler.Show)
	post.POST("/:id/sold", d.PostHandler.MarkSold, d.Session.RequireLogin)

	v1 := e.Group("/api/v1")
	mountReference(v1, "brands", d.Reference.Brands)
	mountReference(v1, "models", d.Reference.Models)
	mountReference(v1, "categories", d.Reference.Categories)
	mountReference(v1, "bodies", d.Reference.Bodies)
	mountReference(v1, "engines", d.Reference.Engines)
	mountReference(v1, "transmission-types", d.Reference.Transmissions)
	mountReference(v1, "drive-types", d.Reference.Drives)
	mountReference(v1, "car-colors", d.Reference.Colors)
	mountReference(v1, "fuel-types", d.Reference.Fuels)
	mountReference(v1, "wheel-sides", d.Reference.WheelSides)
}

func mountReference[T any, PT interface {
	*T
	Rename(string)
}](g *echo.Group, path string, h *handlers.ReferenceHTTP[T, PT]) {
	ref := g.Group("/" + path)
	ref.GET("", h.List)
	ref.GET("/:id", h.Get)
	ref.POST("", h.Create)
	ref.PATCH("/:id", h.Patch)
	ref.DELETE("/:id", h.Delete)
}
