package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/auth"
	"github.com/PancyStudios/PancyDashGo/pkg/database"
	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"github.com/PancyStudios/PancyDashGo/pkg/notify"
	"github.com/goccy/go-json"
)

func newTestServer(t *testing.T) (*Server, *API) {
	t.Helper()

	db := database.New()
	api := &API{
		DB:          db,
		Guilds:      database.NewGuildService(db),
		Warns:       database.NewWarnService(db),
		Bans:        database.NewBanService(db),
		Logs:        database.NewLogService(db),
		Stats:       database.NewStatsService(db),
		Auth:        auth.NewService("id", "secret", "http://localhost:3000/auth/callback", "session-secret"),
		Sink:        notify.NewMemorySink(),
		FrontendURL: "http://localhost:3000",
		StartTime:   time.Now(),
	}

	srv := NewServer([]string{"http://localhost:3000"})
	SetupAPIRoutes(srv, api)
	return srv, api
}

func doRequest(srv *Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not the standard envelope: %v (%s)", err, w.Body.String())
	}
	return env
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Status   string `json:"status"`
		Database struct {
			IsOnline bool `json:"isOnline"`
		} `json:"database"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	// The test server never connects to Mongo
	if body.Database.IsOnline {
		t.Error("database should report offline")
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, "GET", "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Success {
		t.Error("success should be false on 404")
	}
}

func TestBotStatsFallbackCommandCount(t *testing.T) {
	srv, api := newTestServer(t)
	api.Commands = nil

	w := doRequest(srv, "GET", "/api/bot/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	env := decodeEnvelope(t, w)
	var stats models.BotStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	// With no session the client reports everything zeroed, including the
	// command count
	if stats.Servers != 0 || stats.Commands != 0 {
		t.Errorf("stats = %+v, want zeros while the bot is offline", stats)
	}
}

func TestCommandsEndpoint(t *testing.T) {
	srv, api := newTestServer(t)
	api.Commands = []models.Command{
		{Name: "ban", Category: "Moderation"},
		{Name: "ping", Category: "Info"},
	}

	w := doRequest(srv, "GET", "/api/bot/commands", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	env := decodeEnvelope(t, w)
	var commands []models.Command
	if err := json.Unmarshal(env.Data, &commands); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(commands) != 2 {
		t.Errorf("len(commands) = %d, want 2", len(commands))
	}
}

func TestChannelsRequiresConnectedBot(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, "GET", "/api/bot/guilds/123/channels", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestDiscordGuildsRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, "GET", "/api/discord/guilds", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a token", w.Code)
	}

	w = doRequest(srv, "GET", "/api/discord/guilds", map[string]string{
		"Authorization": "Bearer not-a-real-token",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for a bad token", w.Code)
	}
}

func TestDiscordFailureStatus(t *testing.T) {
	// Anything that is not an upstream 401 collapses to the generic 500
	status, _ := discordFailureStatus(errors.New("connection refused"))
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for an unreachable upstream", status)
	}
}

func TestMeReturnsSessionUser(t *testing.T) {
	srv, api := newTestServer(t)

	token, err := api.Auth.IssueSession(&auth.User{ID: "42", Username: "pancy"}, "tok")
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	w := doRequest(srv, "GET", "/api/auth/me", map[string]string{
		"Authorization": "Bearer " + token,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	env := decodeEnvelope(t, w)
	var user auth.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if user.ID != "42" || user.Username != "pancy" {
		t.Errorf("user = %+v, want ID 42 / pancy", user)
	}
}

func TestLoginRedirectsToDiscord(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, "GET", "/api/auth/login?state=abc", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.Contains(location, "discord.com/api/oauth2/authorize") {
		t.Errorf("redirect location = %q", location)
	}
	if !strings.Contains(location, "state=abc") {
		t.Errorf("state not carried through: %q", location)
	}
}

func TestCallbackRequiresCode(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, "GET", "/api/auth/callback", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateConfigRejectsInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("PATCH", "/api/guilds/123/config", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPreviewOriginRegex(t *testing.T) {
	srv := NewServer([]string{"http://localhost:3000"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://pancydash-git-main.vercel.app", true},
		{"https://evil.com", false},
		{"http://pancydash.vercel.app", false},
	}
	for _, tc := range cases {
		if got := srv.allowPreviewOrigin(tc.origin); got != tc.want {
			t.Errorf("allowPreviewOrigin(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	srv, _ := newTestServer(t)

	var last int
	for i := 0; i < 105; i++ {
		w := doRequest(srv, "GET", "/health", nil)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after 105 requests = %d, want 429", last)
	}
}
