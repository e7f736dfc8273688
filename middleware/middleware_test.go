package middleware

import (
	"net/http"
	"net/http/httptest"
	"quotation-backend/lib/rbac"
	"quotation-backend/models"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func withClaims(userID string, role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"sub":  userID,
			"name": "Test User",
			"role": string(role),
		}})
		return ctx.Next()
	}
}

func ok(ctx *fiber.Ctx) error {
	return ctx.SendStatus(fiber.StatusOK)
}

func TestClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/", withClaims("15", models.UserRoleAdmin), func(ctx *fiber.Ctx) error {
		require.Equal(t, "15", GetUserID(ctx))
		require.Equal(t, uint(15), GetUserIDUint(ctx))
		require.Equal(t, "Test User", GetUserName(ctx))
		require.Equal(t, models.UserRoleAdmin, GetUserRole(ctx))
		return ok(ctx)
	})
	app.Get("/anon", func(ctx *fiber.Ctx) error {
		require.Equal(t, "", GetUserID(ctx))
		require.Equal(t, uint(0), GetUserIDUint(ctx))
		return ok(ctx)
	})
	for _, path := range []string{"/", "/anon"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestManagerRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/client", withClaims("5", models.UserRoleClient), ManagerRequired(), ok)
	app.Get("/admin", withClaims("1", models.UserRoleSuperAdmin), ManagerRequired(), ok)

	resp, err := app.Test(httptest.NewRequest("GET", "/client", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRbacMiddleware(t *testing.T) {
	rbac.NewHandler()
	newApp := func(userID string, role models.UserRole) *fiber.App {
		app := fiber.New()
		app.Use(withClaims(userID, role), RbacMiddleware())
		app.Get("/api/v1/cotizacion/dashboard-paginated", ok)
		app.Get("/api/v1/cotizacion/by-usuario-paginated/:id", ok)
		app.Put("/api/v1/cotizacion/observaciones/:id", ok)
		app.Post("/api/v1/categoria", ok)
		app.Get("/api/v1/sin-regla", ok)
		return app
	}
	t.Run("client denied dashboard", func(t *testing.T) {
		resp, err := newApp("5", models.UserRoleClient).Test(httptest.NewRequest("GET", "/api/v1/cotizacion/dashboard-paginated", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
	t.Run("client own list", func(t *testing.T) {
		resp, err := newApp("5", models.UserRoleClient).Test(httptest.NewRequest("GET", "/api/v1/cotizacion/by-usuario-paginated/5", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("letter case does not bypass rules", func(t *testing.T) {
		requests := []*http.Request{
			httptest.NewRequest("POST", "/api/v1/CATEGORIA", nil),
			httptest.NewRequest("PUT", "/api/v1/Cotizacion/observaciones/1", nil),
			httptest.NewRequest("GET", "/api/v1/cotizacion/DASHBOARD-paginated", nil),
		}
		for _, req := range requests {
			resp, err := newApp("5", models.UserRoleClient).Test(req)
			require.Nil(t, err)
			require.Equal(t, fiber.StatusForbidden, resp.StatusCode, req.URL.Path)
		}
	})
	t.Run("manager passes case variant", func(t *testing.T) {
		resp, err := newApp("1", models.UserRoleAdmin).Test(httptest.NewRequest("POST", "/api/v1/Categoria", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("route without rule denied", func(t *testing.T) {
		resp, err := newApp("1", models.UserRoleSuperAdmin).Test(httptest.NewRequest("GET", "/api/v1/sin-regla", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
	t.Run("unknown role", func(t *testing.T) {
		resp, err := newApp("5", models.UserRole("")).Test(httptest.NewRequest("GET", "/api/v1/cotizacion/by-usuario-paginated/5", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10))
	app.Post("/", ok)

	req := httptest.NewRequest("POST", "/", strings.NewReader("small"))
	resp, err := app.Test(req)
	require.Nil(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 20)))
	resp, err = app.Test(req)
	require.Nil(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}
