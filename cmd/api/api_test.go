package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farxc/folha-assistente/internal/chat"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/metrics"
	"github.com/farxc/folha-assistente/internal/payroll/payrolltest"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/session"
	"github.com/farxc/folha-assistente/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestApp(t *testing.T, holder *tabular.Holder, withStore bool) *application {
	t.Helper()
	appLogger := logger.NewNop()

	var storage *store.Storage
	if withStore {
		raw, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		raw.SetMaxOpenConns(1)
		conn := sqlx.NewDb(raw, "sqlite3")
		t.Cleanup(func() { conn.Close() })
		storage = store.NewStorage(conn)
		require.NoError(t, storage.Interactions.EnsureSchema(context.Background()))
	}

	reg := prometheus.NewRegistry()
	cfg := config{router: chat.RouterConfig{DependencyTimeout: intentTimeout}}
	router, err := chat.NewRouter(holder, cfg.router, appLogger)
	require.NoError(t, err)

	return &application{
		config:   cfg,
		chat:     chat.NewService(router, session.NewMemory(sessionTTL, 10, 50), storage, metrics.New(reg), appLogger),
		holder:   holder,
		store:    storage,
		gatherer: reg,
		logger:   appLogger,
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestChatHandler_TabularAndFollowUp(t *testing.T) {
	app := newTestApp(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), true)
	h := app.mount()

	rec := do(t, h, http.MethodPost, "/v1/chat", `{"message":"Qual o salário líquido do Bruno Lima em maio/2025?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[map[string]any](t, rec)
	assert.Equal(t, "tabular", first["tool_used"])
	assert.Equal(t, "ok", first["reason"])
	assert.Contains(t, first["response"], "R$ 6.400,00")
	assert.NotNil(t, first["evidence"])
	sessionID, _ := first["session_id"].(string)
	require.NotEmpty(t, sessionID)

	rec = do(t, h, http.MethodPost, "/v1/chat/"+sessionID, `{"message":"E o salário líquido de junho/2025?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[map[string]any](t, rec)
	assert.Equal(t, sessionID, second["session_id"])
	assert.Contains(t, second["response"], "R$ 5.550,00")

	rec = do(t, h, http.MethodGet, "/v1/sessions/"+sessionID+"/context", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ctxResp := decode[struct {
		Success bool            `json:"success"`
		Data    session.Summary `json:"data"`
	}](t, rec)
	assert.True(t, ctxResp.Success)
	assert.Equal(t, 4, ctxResp.Data.MessageCount)
	assert.Equal(t, []string{"Bruno Lima"}, ctxResp.Data.EmployeeMentions)
	assert.Equal(t, []string{"2025-05", "2025-06"}, ctxResp.Data.CompetenciesMentioned)

	rec = do(t, h, http.MethodGet, "/v1/interactions/history?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	hist := decode[struct {
		Data []store.Interaction `json:"data"`
	}](t, rec)
	require.Len(t, hist.Data, 1)
	assert.Equal(t, "E o salário líquido de junho/2025?", hist.Data[0].Question)

	rec = do(t, h, http.MethodDelete, "/v1/sessions/"+sessionID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/v1/sessions/"+sessionID+"/context", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatHandler_BadRequests(t *testing.T) {
	h := newTestApp(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), false).mount()

	rec := do(t, h, http.MethodPost, "/v1/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/chat", `{"message":"oi","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_NotReady(t *testing.T) {
	app := newTestApp(t, tabular.NewHolder(), false)
	h := app.mount()

	rec := do(t, h, http.MethodPost, "/v1/chat", `{"message":"Quantos funcionários temos?"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, retryAfter, rec.Header().Get("Retry-After"))
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "not_ready", body["reason"])

	// Delegated tools still answer while the dataset loads.
	rec = do(t, h, http.MethodPost, "/v1/chat", `{"message":"Olá, tudo bem?"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[healthResponse](t, rec)
	assert.Equal(t, "loading", health.Status)
	assert.False(t, health.Dataset.Ready)
}

func TestHealthHandler(t *testing.T) {
	h := newTestApp(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), false).mount()

	rec := do(t, h, http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[healthResponse](t, rec)
	assert.Equal(t, "available", health.Status)
	assert.Equal(t, version, health.Version)
	assert.True(t, health.Dataset.Ready)
	assert.Equal(t, 12, health.Dataset.Records)
	assert.Equal(t, 2, health.Dataset.Employees)
	assert.Equal(t, 6, health.Dataset.Competencies)
	assert.False(t, health.Dependencies["interaction_store"])
}

func TestInteractionHistory_Disabled(t *testing.T) {
	h := newTestApp(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), false).mount()
	rec := do(t, h, http.MethodGet, "/v1/interactions/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExamplesAndStatsAndMetrics(t *testing.T) {
	h := newTestApp(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), false).mount()

	rec := do(t, h, http.MethodGet, "/v1/examples", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ex := decode[struct {
		Data map[string][]string `json:"data"`
	}](t, rec)
	assert.NotEmpty(t, ex.Data["tabular"])
	assert.NotEmpty(t, ex.Data["external"])
	assert.NotEmpty(t, ex.Data["general"])

	do(t, h, http.MethodPost, "/v1/chat", `{"message":"Quantos funcionários temos?"}`)

	rec = do(t, h, http.MethodGet, "/v1/sessions/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[struct {
		Data session.Stats `json:"data"`
	}](t, rec)
	assert.Equal(t, 1, stats.Data.TotalSessions)
	assert.Equal(t, 2, stats.Data.TotalMessages)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `payroll_answers_total{reason="ok",tool="tabular"} 1`)
}
