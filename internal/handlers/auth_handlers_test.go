package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmw "github.com/MKuranov/car_market/internal/middleware/auth"
	"github.com/MKuranov/car_market/internal/models"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/auth/register",
		`{"login":"ivan","password":"secret","name":"Ivan"}`)
	require.NoError(t, env.Auth.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "ivan", resp.Login)
	assert.NotContains(t, rec.Body.String(), "secret")

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser("ivan")

	_, c := env.doJSONRequest(http.MethodPost, "/auth/register",
		`{"login":"ivan","password":"other"}`)
	err := env.Auth.Register(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestRegister_EmptyCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty login", body: `{"login":"","password":"secret"}`},
		{name: "empty password", body: `{"login":"ivan","password":""}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, c := env.doJSONRequest(http.MethodPost, "/auth/register", tt.body)
			err := env.Auth.Register(c)
			require.Error(t, err)

			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser("ivan")

	rec, c := env.doJSONRequest(http.MethodPost, "/auth/login",
		`{"login":"ivan","password":"secret"}`)
	require.NoError(t, env.Auth.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, authmw.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	// the cookie round-trips through the session middleware
	_, c2 := env.doJSONRequest(http.MethodGet, "/", "")
	c2.Request().AddCookie(cookies[0])

	called := false
	mw := env.Session.LoadUser(func(c echo.Context) error {
		called = true
		got := authmw.CurrentUser(c)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		return nil
	})
	require.NoError(t, mw(c2))
	assert.True(t, called)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser("ivan")

	_, c := env.doJSONRequest(http.MethodPost, "/auth/login",
		`{"login":"ivan","password":"wrong"}`)
	err := env.Auth.Login(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLogOut_ExpiresCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/auth/logout", "")
	require.NoError(t, env.Auth.LogOut(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, authmw.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestRequireLogin_RedirectsAnonymous(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/post/my", "")
	mw := env.Session.RequireLogin(func(c echo.Context) error {
		t.Fatal("next handler must not run for anonymous request")
		return nil
	})
	require.NoError(t, mw(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}
