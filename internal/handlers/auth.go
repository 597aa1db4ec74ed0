package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/MKuranov/car_market/internal/logging"
	authmw "github.com/MKuranov/car_market/internal/middleware/auth"
	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/mykafka"
	"github.com/MKuranov/car_market/internal/repo"
	"github.com/MKuranov/car_market/internal/service"
	"github.com/MKuranov/car_market/internal/transport"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	Users     *service.UserService
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func CreateCookie(name string, value string, path string, expTime time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}

	return cookie
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Login == "" || req.Password == "" {
		l.Warn("register_error", "status", 400, "reason", "empty login or password")
		return echo.NewHTTPError(http.StatusBadRequest, "login and password are required")
	}

	user := &models.User{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
	}
	created, err := h.Users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 409, "reason", "login already taken")
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	h.publish(c, map[string]interface{}{
		"type":   "user_registered",
		"userID": created.ID,
		"login":  created.Login,
	})

	l.Info("register_success", "userID", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.FindByLoginAndPassword(ctx, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_error", "status", 401, "reason", "invalid login or password")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid login or password")
		}
		l.Error("login_error", "status", 500, "reason", "cannot look up user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot look up user")
	}

	exp := time.Now().Add(sessionTTL)
	token, err := h.createSessionToken(user, exp)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign session token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create session")
	}

	c.SetCookie(CreateCookie(authmw.SessionCookie, token, "/", exp))

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(authmw.SessionCookie, "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) createSessionToken(user *models.User, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

func (h *AuthHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
