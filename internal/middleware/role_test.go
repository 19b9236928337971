package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eylulkaya/lostfound/internal/config"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "5bd9dda3-0a31-4ae6-9f1c-3f6d8f6f5c21",
		"name":  "Test User",
		"email": "test@campus.edu",
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(expiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newGatedApp() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/staff/ping", JWTProtected(cfg), RequireRole(models.RoleStaff), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/staff/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestRequireRoleAllowsExactMatch(t *testing.T) {
	app := newGatedApp()
	resp := request(t, app, signToken(t, models.RoleStaff, time.Hour))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for staff token, got %d", resp.StatusCode)
	}
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	app := newGatedApp()

	// No hierarchy: admin does not satisfy a staff requirement.
	for _, role := range []string{models.RoleAdmin, models.RoleUser} {
		resp := request(t, app, signToken(t, role, time.Hour))
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("role %q: expected 403, got %d", role, resp.StatusCode)
		}
	}
}

func TestRequireRoleRejectsMissingToken(t *testing.T) {
	app := newGatedApp()
	resp := request(t, app, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestRequireRoleRejectsMalformedToken(t *testing.T) {
	app := newGatedApp()
	resp := request(t, app, "not-a-jwt")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", resp.StatusCode)
	}
}

func TestRequireRoleRejectsExpiredToken(t *testing.T) {
	app := newGatedApp()
	resp := request(t, app, signToken(t, models.RoleStaff, -time.Hour))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}
