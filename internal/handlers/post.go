package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/es"
	"github.com/MKuranov/car_market/internal/logging"
	authmw "github.com/MKuranov/car_market/internal/middleware/auth"
	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/mykafka"
	"github.com/MKuranov/car_market/internal/service"
	"github.com/MKuranov/car_market/internal/transport"
	"github.com/MKuranov/car_market/internal/util"
)

type PostHandler struct {
	Posts  *service.PostService
	Cars   *service.CarService
	Photos *service.PostPhotoService

	Brands        *service.ReferenceService[models.Brand]
	Models        *service.ReferenceService[models.CarModel]
	Categories    *service.ReferenceService[models.Category]
	Bodies        *service.ReferenceService[models.Body]
	Engines       *service.ReferenceService[models.Engine]
	Transmissions *service.ReferenceService[models.TransmissionType]
	Drives        *service.ReferenceService[models.DriveType]
	Colors        *service.ReferenceService[models.CarColor]
	Fuels         *service.ReferenceService[models.FuelType]
	WheelSides    *service.ReferenceService[models.WheelSide]

	Producer  *mykafka.Producer
	ES        *elasticsearch.Client
	ESIndex   string
	UploadDir string
}

// Index serves the feed: active posts, newest first.
func (h *PostHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.index")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, posts, err := h.Posts.FindActiveOrderByCreatedAtDesc(ctx, offset, limit)
	if err != nil {
		l.Error("index_error", "status", 500, "reason", "cannot load feed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load feed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": posts,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// Show returns one post with the car, its references, the owner and
// the photos loaded.
func (h *PostHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.show")

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		l.Warn("show_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	post, err := h.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("show_error", "status", 404, "reason", "post not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("post with id=%d not found", id))
		}
		l.Error("show_error", "status", 500, "reason", "cannot load post", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load post")
	}

	return c.JSON(http.StatusOK, post)
}

// CreateForm returns the ten dropdown lists the listing form needs.
func (h *PostHandler) CreateForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.create_form")

	form := map[string]any{}
	for name, load := range map[string]func() (any, error){
		"brands":             func() (any, error) { return h.Brands.FindAllOrderByID(ctx) },
		"models":             func() (any, error) { return h.Models.FindAllOrderByID(ctx) },
		"categories":         func() (any, error) { return h.Categories.FindAllOrderByID(ctx) },
		"bodies":             func() (any, error) { return h.Bodies.FindAllOrderByID(ctx) },
		"engines":            func() (any, error) { return h.Engines.FindAllOrderByID(ctx) },
		"transmission_types": func() (any, error) { return h.Transmissions.FindAllOrderByID(ctx) },
		"drive_types":        func() (any, error) { return h.Drives.FindAllOrderByID(ctx) },
		"car_colors":         func() (any, error) { return h.Colors.FindAllOrderByID(ctx) },
		"fuel_types":         func() (any, error) { return h.Fuels.FindAllOrderByID(ctx) },
		"wheel_sides":        func() (any, error) { return h.WheelSides.FindAllOrderByID(ctx) },
	} {
		items, err := load()
		if err != nil {
			l.Error("create_form_error", "status", 500, "reason", "cannot load "+name, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot load "+name)
		}
		form[name] = items
	}

	return c.JSON(http.StatusOK, form)
}

// Create handles the multipart listing form. The original flow is kept:
// no user in the session redirects to the login page, any failure while
// building the car/post/photo graph redirects back to the form with an
// error flag. There is no transaction across the three inserts, so a
// crash mid-way can leave an orphaned car.
func (h *PostHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.create")

	user := authmw.CurrentUser(c)
	if user == nil {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	var req transport.PostCreationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 302, "reason", "invalid form", "error", err)
		return c.Redirect(http.StatusFound, "/post/createPost?error=true")
	}

	car, err := h.carFromRequest(ctx, &req)
	if err != nil {
		l.Warn("create_error", "status", 302, "reason", "cannot resolve car references", "error", err)
		return c.Redirect(http.StatusFound, "/post/createPost?error=true")
	}
	if _, err := h.Cars.Create(ctx, car); err != nil {
		l.Error("create_error", "status", 302, "reason", "cannot save car", "error", err)
		return c.Redirect(http.StatusFound, "/post/createPost?error=true")
	}

	post := &models.Post{
		Status:      models.PostStatusActive,
		Description: req.Description,
		CreatedAt:   time.Now(),
		Price:       req.Price,
		CarID:       car.ID,
		UserID:      user.ID,
	}
	if _, err := h.Posts.Create(ctx, post); err != nil {
		l.Error("create_error", "status", 302, "reason", "cannot save post", "error", err)
		return c.Redirect(http.StatusFound, "/post/createPost?error=true")
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["photos"]
	}
	if err := h.savePhotos(ctx, files, post); err != nil {
		l.Error("create_error", "status", 302, "reason", "cannot save photos", "error", err)
		return c.Redirect(http.StatusFound, "/post/createPost?error=true")
	}

	h.publish(c, map[string]interface{}{
		"type":   "post_created",
		"postID": post.ID,
		"userID": user.ID,
	})
	h.indexPost(c, post, car)

	l.Info("create_success", "postID", post.ID, "userID", user.ID)
	return c.Redirect(http.StatusFound, "/")
}

// My lists the session user's own posts.
func (h *PostHandler) My(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.my")

	user := authmw.CurrentUser(c)
	if user == nil {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	posts, err := h.Posts.FindByUserID(ctx, int(user.ID))
	if err != nil {
		l.Error("my_error", "status", 500, "reason", "cannot load posts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// MarkSold flips an owned post to the sold status. There is no guard on
// the transition itself: update may set either status.
func (h *PostHandler) MarkSold(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.mark_sold")

	user := authmw.CurrentUser(c)
	if user == nil {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	id := util.ParseIntDefault(c.Param("id"), 0)
	post, err := h.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("mark_sold_error", "status", 404, "reason", "post not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("post with id=%d not found", id))
		}
		l.Error("mark_sold_error", "status", 500, "reason", "cannot load post", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load post")
	}
	if post.UserID != user.ID {
		l.Warn("mark_sold_error", "status", 403, "reason", "not the owner", "postID", id, "userID", user.ID)
		return echo.NewHTTPError(http.StatusForbidden, "not your post")
	}

	post.Status = models.PostStatusSold
	if err := h.Posts.Update(ctx, post); err != nil {
		l.Error("mark_sold_error", "status", 500, "reason", "cannot update post", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update post")
	}

	h.publish(c, map[string]interface{}{
		"type":   "post_sold",
		"postID": post.ID,
		"userID": user.ID,
	})

	l.Info("mark_sold_success", "postID", post.ID)
	return c.JSON(http.StatusOK, post)
}

// LastDay lists posts created within the last 24 hours.
func (h *PostHandler) LastDay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.last_day")

	posts, err := h.Posts.FindForLastDay(ctx)
	if err != nil {
		l.Error("last_day_error", "status", 500, "reason", "cannot load posts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// WithPhotos lists posts that have at least one photo.
func (h *PostHandler) WithPhotos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.with_photos")

	posts, err := h.Posts.FindWithPhotos(ctx)
	if err != nil {
		l.Error("with_photos_error", "status", 500, "reason", "cannot load posts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// ByBrand lists posts whose brand name contains the given substring.
func (h *PostHandler) ByBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "post.by_brand")

	brand := c.QueryParam("brand")
	if brand == "" {
		l.Warn("by_brand_error", "status", 400, "reason", "brand query param is empty")
		return echo.NewHTTPError(http.StatusBadRequest, "brand query param is required")
	}

	posts, err := h.Posts.FindByBrand(ctx, brand)
	if err != nil {
		l.Error("by_brand_error", "status", 500, "reason", "cannot load posts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// carFromRequest resolves every dropdown id to an existing reference
// row before the car is built, so a stale form fails fast.
func (h *PostHandler) carFromRequest(ctx context.Context, req *transport.PostCreationRequest) (*models.Car, error) {
	brand, err := h.Brands.FindByID(ctx, req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("brand %d: %w", req.BrandID, err)
	}
	model, err := h.Models.FindByID(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("model %d: %w", req.ModelID, err)
	}
	category, err := h.Categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", req.CategoryID, err)
	}
	body, err := h.Bodies.FindByID(ctx, req.BodyID)
	if err != nil {
		return nil, fmt.Errorf("body %d: %w", req.BodyID, err)
	}
	engine, err := h.Engines.FindByID(ctx, req.EngineID)
	if err != nil {
		return nil, fmt.Errorf("engine %d: %w", req.EngineID, err)
	}
	transmission, err := h.Transmissions.FindByID(ctx, req.TransmissionTypeID)
	if err != nil {
		return nil, fmt.Errorf("transmission type %d: %w", req.TransmissionTypeID, err)
	}
	drive, err := h.Drives.FindByID(ctx, req.DriveTypeID)
	if err != nil {
		return nil, fmt.Errorf("drive type %d: %w", req.DriveTypeID, err)
	}
	color, err := h.Colors.FindByID(ctx, req.CarColorID)
	if err != nil {
		return nil, fmt.Errorf("car color %d: %w", req.CarColorID, err)
	}
	fuel, err := h.Fuels.FindByID(ctx, req.FuelTypeID)
	if err != nil {
		return nil, fmt.Errorf("fuel type %d: %w", req.FuelTypeID, err)
	}
	wheelSide, err := h.WheelSides.FindByID(ctx, req.WheelSideID)
	if err != nil {
		return nil, fmt.Errorf("wheel side %d: %w", req.WheelSideID, err)
	}

	return &models.Car{
		VIN:                req.VIN,
		Mileage:            req.Mileage,
		YearOfManufacture:  req.YearOfManufacture,
		CountOwners:        req.CountOwners,
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
	}, nil
}

// savePhotos writes each non-empty upload under the upload dir with a
// collision-resistant name and records one photo row per file. A nil or
// empty list is a no-op. On failure already-written files stay on disk.
func (h *PostHandler) savePhotos(ctx context.Context, files []*multipart.FileHeader, post *models.Post) error {
	if len(files) == 0 {
		return nil
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return fmt.Errorf("cannot create upload dir: %w", err)
	}

	for _, fh := range files {
		if fh.Size == 0 {
			continue
		}

		filename := uuid.NewString() + "_" + filepath.Base(fh.Filename)
		if err := h.writeUpload(fh, filepath.Join(h.UploadDir, filename)); err != nil {
			return err
		}

		photo := &models.PostPhoto{PhotoPath: filename, PostID: post.ID}
		if _, err := h.Photos.Create(ctx, photo); err != nil {
			return err
		}
	}
	return nil
}

func (h *PostHandler) writeUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func (h *PostHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "post_events", fmt.Sprint(event["postID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *PostHandler) indexPost(c echo.Context, post *models.Post, car *models.Car) {
	if h.ES == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brand, _ := h.Brands.FindByID(ctx, int(car.BrandID))
	model, _ := h.Models.FindByID(ctx, int(car.ModelID))
	doc := es.PostDocument{
		ID:          post.ID,
		Description: post.Description,
		Price:       post.Price,
		Status:      post.Status,
	}
	if brand != nil {
		doc.Brand = brand.Name
	}
	if model != nil {
		doc.Model = model.Name
	}

	if err := es.IndexPost(ctx, h.ES, h.ESIndex, doc); err != nil {
		c.Logger().Errorf("Elasticsearch index error: %v", err)
	}
}
