package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agora/backend/internal/api"
	"agora/backend/internal/common"
	"agora/backend/internal/config"
	"agora/backend/internal/db"
	"agora/backend/internal/events"
	"agora/backend/internal/metrics"
	"agora/backend/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(context.Background(), gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	cfg := &config.Config{
		AppEnv:    "test",
		Server:    config.ServerConfig{CORSOrigins: []string{"*"}},
		Auth:      config.AuthConfig{Secret: "router-test", TokenTTL: time.Hour},
		Cache:     config.CacheConfig{TTL: time.Minute},
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsRegistry(reg)
	store := services.Store{DB: gdb, SQL: sqlx.NewDb(sqlDB, "sqlite3")}
	deps := api.InitDependencies(cfg, store, common.NewCacheService(time.Minute, time.Minute), events.NoopPublisher{}, m)

	handler := RegisterRoutes(deps, Options{
		Config:   cfg,
		UpSince:  time.Now(),
		Gatherer: reg,
		HealthChecks: []api.HealthCheck{
			{Name: "database", Details: "connected", Ping: sqlDB.PingContext},
		},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()

	req, err := http.NewRequest(method, c.base+path, bytes.NewBufferString(body))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func (c client) as(token string) client {
	c.token = token
	return c
}

func register(t *testing.T, c client, body string) (token string, memberID, affiliateID uint64) {
	t.Helper()
	code, out := c.do("POST", "/api/auth/register", body)
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d %v", code, out)
	}
	payload := out["payload"].(map[string]any)
	return payload["token"].(string), uint64(payload["member_id"].(float64)), uint64(payload["affiliate_id"].(float64))
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t)
	anon := client{t: t, base: srv.URL}

	resp, err := http.Get(srv.URL + "/api/ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	pong, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(pong) != "pong" {
		t.Fatalf("Expected pong, got %q", pong)
	}

	anaToken, anaID, _ := register(t, anon, `{"username":"ana","password":"secret1","fullname":"Ana A"}`)
	boToken, _, boAff := register(t, anon, `{"username":"bo","password":"secret2","bio":"hidden","is_private":true}`)
	ana, bo := anon.as(anaToken), anon.as(boToken)

	if code, _ := anon.do("GET", "/api/members", ""); code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a token, got %d", code)
	}

	code, out := ana.do("GET", fmt.Sprintf("/api/members/%d", anaID), "")
	if code != http.StatusOK || out["payload"].(map[string]any)["username"] != "ana" {
		t.Errorf("Lookup by id failed: %d %v", code, out)
	}

	code, out = ana.do("GET", "/api/members/bo", "")
	if code != http.StatusOK {
		t.Fatalf("Lookup by username failed: %d %v", code, out)
	}
	if pov := out["payload"].(map[string]any); pov["is_consultant_allowed"] != false || pov["bio"] != nil {
		t.Errorf("Private profile leaked to a stranger: %v", pov)
	}

	code, out = ana.do("POST", fmt.Sprintf("/api/affiliates/%d/follow", boAff), "")
	if code != http.StatusOK {
		t.Fatalf("follow: %d %v", code, out)
	}
	result := out["payload"].(map[string]any)
	if result["is_accepted"] != false {
		t.Errorf("Private followee must not auto-accept: %v", result)
	}
	requestID := uint64(result["follow_request_id"].(float64))

	if code, _ := ana.do("POST", fmt.Sprintf("/api/affiliates/%d/follow", boAff), ""); code != http.StatusConflict {
		t.Errorf("Expected 409 on a repeated follow, got %d", code)
	}

	code, out = bo.do("GET", "/api/followers/requests", "")
	if code != http.StatusOK || len(out["payload"].([]any)) != 1 {
		t.Fatalf("Expected one pending request, got %d %v", code, out)
	}
	if code, _ := ana.do("PATCH", fmt.Sprintf("/api/followers/requests/%d/accept", requestID), ""); code != http.StatusForbidden {
		t.Errorf("Only the followee may answer, got %d", code)
	}
	if code, out := bo.do("PATCH", fmt.Sprintf("/api/followers/requests/%d/accept", requestID), ""); code != http.StatusOK {
		t.Fatalf("accept: %d %v", code, out)
	}

	code, out = ana.do("GET", "/api/members/bo", "")
	if pov := out["payload"].(map[string]any); code != http.StatusOK || pov["bio"] != "hidden" {
		t.Errorf("Accepted follower should see the bio: %d %v", code, pov)
	}

	code, out = bo.do("POST", "/api/posts", `{"body":"hello followers"}`)
	if code != http.StatusCreated {
		t.Fatalf("post: %d %v", code, out)
	}

	code, out = ana.do("GET", "/api/feed?limit=10", "")
	if code != http.StatusOK {
		t.Fatalf("feed: %d %v", code, out)
	}
	feed := out["payload"].([]any)
	if len(feed) != 1 || feed[0].(map[string]any)["body"] != "hello followers" {
		t.Errorf("Expected bo's post in ana's feed, got %v", feed)
	}

	if code, _ := ana.do("POST", "/api/auth/logout", ""); code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}
	if code, _ := ana.do("GET", "/api/auth/reauth", ""); code != http.StatusUnauthorized {
		t.Errorf("Revoked token must be rejected, got %d", code)
	}

	code, out = anon.do("POST", "/api/auth/login", `{"username":"ana","password":"secret1"}`)
	if code != http.StatusOK || out["authenticated"] != true {
		t.Errorf("login: %d %v", code, out)
	}
}

func TestRouter_Infrastructure(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/healthCheck")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var health map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || health["status"] != "ok" {
		t.Errorf("Unexpected health %d %v", resp.StatusCode, health)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID on every response")
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(raw), "agora_http_requests_total") {
		t.Errorf("Expected request counters in /metrics output")
	}
}
