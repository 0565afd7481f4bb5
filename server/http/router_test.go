package serverhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swissdamed-migel/internal/config"
	"swissdamed-migel/internal/middleware"
	"swissdamed-migel/internal/migel/model"
	"swissdamed-migel/internal/migel/service"
)

func testRouter() http.Handler {
	it := model.CatalogItem{PositionNr: "10.01.01.00.1", Index: []string{"manuell", "rollstuhl"}}
	it.Primary[model.DE] = []string{"manuell", "rollstuhl"}
	m := service.NewMatcher([]model.CatalogItem{it}, nil, service.DefaultOptions())

	cfg := config.Config{Server: config.ServerConfig{AllowOrigins: []string{"*"}, MaxUploadMB: 1}}
	return NewRouter(cfg, m, zerolog.Nop())
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterMatch(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(`{"de":"Rollstuhl manuell"}`))
	testRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"positionNr": "10.01.01.00.1"`)
}

func TestRouterRoutes(t *testing.T) {
	r := testRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/match", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/match", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	assert.JSONEq(t, `{"items":1,"keywords":2}`, rec.Body.String())
}

func TestRouterBodyLimit(t *testing.T) {
	body := `{"de":"` + strings.Repeat("x", 2<<20) + `"}`
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
