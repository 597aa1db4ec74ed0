package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/service"
)

const (
	SessionCookie = "session"

	userContextKey = "user"
)

type SessionMiddleware struct {
	Users     *service.UserService
	JWTSecret []byte
}

// LoadUser resolves the session cookie into a user and stores it on the
// context. It never fails the request: handlers decide what an absent
// user means for them.
func (m *SessionMiddleware) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil {
			return next(c)
		}

		token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			return next(c)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return next(c)
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return next(c)
		}

		user, err := m.Users.FindByID(c.Request().Context(), int(sub))
		if err != nil {
			return next(c)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireLogin redirects anonymous requests to the login page, the way
// the listing form behaves in a browser.
func (m *SessionMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.Redirect(http.StatusFound, "/auth/login")
		}
		return next(c)
	}
}

func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}
