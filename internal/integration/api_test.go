package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"project-compass/internal/config"
	"project-compass/internal/database"
	"project-compass/internal/database/migration"
	dbpostgres "project-compass/internal/database/postgres"
	"project-compass/internal/database/seeder"
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/delivery/http/routes"
	"project-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// These tests exercise the real HTTP surface against a real Postgres. They
// skip unless the DB_* env vars point at a disposable test database.

func testConfig(t *testing.T) config.Config {
	t.Helper()

	required := []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD"}
	for _, key := range required {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			t.Skipf("missing test DB env vars (%s); skipping integration tests", strings.Join(required, ", "))
		}
	}

	return config.Config{
		App: config.AppConfig{AppName: "project-compass-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:         os.Getenv("DB_HOST"),
			DBPort:         os.Getenv("DB_PORT"),
			DBName:         os.Getenv("DB_NAME"),
			DBUser:         os.Getenv("DB_USER"),
			DBPassword:     os.Getenv("DB_PASSWORD"),
			DBSSLMode:      os.Getenv("DB_SSL_MODE"),
			ConnectTimeout: 5 * time.Second,
		},
		JWT: config.JWTConfig{
			AccessSecret:     "integration-access-secret",
			RefreshSecret:    "integration-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 7 * 24 * time.Hour,
		},
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot resolve caller path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations")
}

func newTestApp(t *testing.T) (*fiber.App, database.DB) {
	t.Helper()

	cfg := testConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := (migration.Runner{Dir: resolveMigrationsDir(t)}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if err := (seeder.Runner{Seeders: []seeder.Seeder{seeder.ProjectsSeeder{}}}).Run(ctx, db); err != nil {
		t.Fatalf("seed projects: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	hub := ws.NewHub(logger)
	go hub.Run()

	app := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	app.Use(middleware.NewErrorMiddleware().Middleware())
	routes.NewRegistry(cfg, db, nil, hub, logger).Register(app)
	return app, db
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestAPI_RegisterProfileRecommendations(t *testing.T) {
	app, db := newTestApp(t)

	email := fmt.Sprintf("it-%s@example.com", uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = db.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	})

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"password": "correct horse battery",
		"name":     "Integration Tester",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d message %q", status, env.Message)
	}

	var registered struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &registered); err != nil || registered.AccessToken == "" {
		t.Fatalf("register: no access token in response (%v)", err)
	}
	token := registered.AccessToken

	status, env = doJSON(t, app, http.MethodPut, "/api/v1/users/me", token, map[string]any{
		"interests": []string{"Web Development"},
		"skills":    []string{"React", "Node.js"},
		"name":      "Integration Tester",
	})
	if status != http.StatusOK {
		t.Fatalf("update profile: status %d message %q", status, env.Message)
	}

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/projects/recommendations?limit=5", token, nil)
	if status != http.StatusOK {
		t.Fatalf("recommendations: status %d message %q", status, env.Message)
	}

	var recs []struct {
		Project struct {
			Domain string `json:"domain"`
		} `json:"project"`
		Score  int    `json:"score"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(env.Data, &recs); err != nil {
		t.Fatalf("recommendations: decode: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("recommendations: empty result over seeded catalog")
	}
	if recs[0].Score <= 0 {
		t.Fatalf("recommendations: top score %d, want > 0", recs[0].Score)
	}
	if recs[0].Project.Domain != "Web Development" {
		t.Fatalf("recommendations: top domain %q", recs[0].Project.Domain)
	}
	if !strings.HasPrefix(recs[0].Reason, "Recommended because it ") {
		t.Fatalf("recommendations: unexpected reason %q", recs[0].Reason)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Fatalf("recommendations: not sorted at %d: %d > %d", i, recs[i].Score, recs[i-1].Score)
		}
	}
}

func TestAPI_AnonymousCatalogPreview(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := doJSON(t, app, http.MethodGet, "/api/v1/projects?limit=50", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list projects: status %d message %q", status, env.Message)
	}

	var res struct {
		Items   []json.RawMessage `json:"items"`
		Total   int               `json:"total"`
		Preview bool              `json:"preview"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("list projects: decode: %v", err)
	}
	if !res.Preview {
		t.Fatal("anonymous listing must be a preview")
	}
	if len(res.Items) > 4 {
		t.Fatalf("anonymous preview returned %d items", len(res.Items))
	}
	if res.Total < len(res.Items) {
		t.Fatalf("total %d smaller than page %d", res.Total, len(res.Items))
	}
}

func TestAPI_NegativeRecommendationLimit(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := doJSON(t, app, http.MethodGet, "/api/v1/projects/recommendations?limit=-1", "", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d message %q", status, env.Message)
	}
}

func TestAPI_ProtectedRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/users/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/me", "not-a-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", status)
	}
}
