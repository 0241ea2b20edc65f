package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCredentials(t *testing.T) {
	g := NewGate("oak", "pallet", time.Hour, nil)

	assert.True(t, g.CheckCredentials("oak", "pallet"))
	assert.False(t, g.CheckCredentials("oak", "wrong"))
	assert.False(t, g.CheckCredentials("gary", "pallet"))
	assert.False(t, g.CheckCredentials("", ""))
}

func newGatedApp(g *Gate) *fiber.App {
	app := fiber.New()
	app.Get("/secret", g.RequireSession(), g.RequireAuthenticated("/login"), func(c *fiber.Ctx) error {
		return c.SendString("form")
	})
	app.Post("/login", g.RequireSession(), func(c *fiber.Ctx) error {
		if !g.CheckCredentials(c.FormValue("username"), c.FormValue("password")) {
			return c.Redirect("/login")
		}
		if err := g.MarkAuthenticated(g.Session(c)); err != nil {
			return err
		}
		return c.Redirect("/")
	})
	return app
}

func login(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	return nil
}

func TestRequireAuthenticated(t *testing.T) {
	g := NewGate("oak", "pallet", time.Hour, nil)
	app := newGatedApp(g)

	t.Run("fresh session is redirected to login", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/secret", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("failed login leaves the session unauthenticated", func(t *testing.T) {
		resp := login(t, app, "oak", "nope")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Nil(t, sessionCookie(resp))
	})

	t.Run("successful login unlocks the form", func(t *testing.T) {
		resp := login(t, app, "oak", "pallet")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)

		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unknown session id is not authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "forged"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	})
}

func TestSessionExpires(t *testing.T) {
	g := NewGate("oak", "pallet", time.Second, nil)
	app := newGatedApp(g)

	cookie := sessionCookie(login(t, app, "oak", "pallet"))
	require.NotNil(t, cookie)

	time.Sleep(2500 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestIsAuthenticatedNilSession(t *testing.T) {
	g := NewGate("oak", "pallet", time.Hour, nil)
	assert.False(t, g.IsAuthenticated(nil))
}
