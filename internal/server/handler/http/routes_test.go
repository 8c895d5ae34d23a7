package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/metrics"
	"github.com/atinyakov/radclients/internal/middleware"
	"github.com/atinyakov/radclients/internal/models"
	handler "github.com/atinyakov/radclients/internal/server/handler/http"
)

func fullRouter(reg *metrics.Registry) http.Handler {
	clients := &fakeClientService{listFn: func() ([]models.ClientView, error) {
		return []models.ClientView{}, nil
	}}
	static := &handler.StaticHandler{Assets: fstest.MapFS{"index.html": {Data: []byte("spa")}}}
	return handler.NewRouter(
		&handler.ClientHandler{ClientService: clients},
		&handler.ZoneHandler{},
		&handler.AuthHandler{},
		static,
		reg,
		zap.NewNop(),
	)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/clients/V-1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	fullRouter(metrics.New()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRouter_CORSSimpleRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("Origin", "http://panel.example")
	rec := httptest.NewRecorder()
	fullRouter(metrics.New()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_StaticFallback(t *testing.T) {
	router := fullRouter(metrics.New())

	for _, path := range []string{"/", "/login", "/settings/profile"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "spa", rec.Body.String(), path)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := fullRouter(metrics.New())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clients", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(),
		`radclients_api_requests_total{method="GET",route="/clients",status="200"} 1`))
}

func TestRouter_NoStatic(t *testing.T) {
	router := handler.NewRouter(&handler.ClientHandler{}, &handler.ZoneHandler{}, &handler.AuthHandler{}, nil, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	clients := &fakeClientService{} // listFn nil: List panics
	router := handler.NewRouter(&handler.ClientHandler{ClientService: clients}, &handler.ZoneHandler{}, &handler.AuthHandler{}, nil, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
