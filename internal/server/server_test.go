package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasteboard/internal/async"
	"tasteboard/internal/config"
	"tasteboard/internal/middleware"
	"tasteboard/internal/models"
	"tasteboard/internal/notifications"
	"tasteboard/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory database. The prometheus
// middleware is left nil so repeated test setups do not re-register collectors.
func newTestServer(t *testing.T, notifyURL string) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Item{}, &models.Review{}, &models.User{}, &models.FavoriteFood{},
	))

	cfg := &config.Config{
		Port:             "8080",
		Env:              "test",
		NotifyURL:        notifyURL,
		WorkflowChannel:  "workflows:user-created",
		AsyncUpdateDelay: 100 * time.Millisecond,
	}

	srv := &Server{
		config:        cfg,
		db:            db,
		itemRepo:      repository.NewItemRepository(db),
		reviewRepo:    repository.NewReviewRepository(db),
		userRepo:      repository.NewUserRepository(db),
		foodRepo:      repository.NewFavoriteFoodRepository(db),
		updater:       async.NewUpdater(db, cfg.AsyncUpdateDelay, middleware.Logger),
		reviewWebhook: notifications.NewReviewWebhook(cfg.NotifyURL, middleware.Logger),
		workflow:      notifications.NewWorkflowTrigger(nil, cfg.WorkflowChannel, middleware.Logger),
	}

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestIndex(t *testing.T) {
	_, app, _ := newTestServer(t, "")

	resp := doJSON(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, "Welcome to our food rating app!", body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	_, app, _ := newTestServer(t, "")

	resp := doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeJSON(t, resp)["status"])

	resp = doJSON(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeJSON(t, resp)["status"])
}
