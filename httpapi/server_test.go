package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verateam/vera-bot/config"
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.AutoMigrate())
	t.Cleanup(func() { st.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{
		HTTPAddr:          ":0",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
	}
	return NewServer(cfg, st), st
}

func doRequest(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, s *Server) string {
	t.Helper()
	w := doRequest(s, http.MethodPost, "/api/login", `{"password":"secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive":true`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoginWrongPassword(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(s, http.MethodPost, "/api/login", `{"password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(s, http.MethodPost, "/api/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingsRequireToken(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/bookings", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(s, http.MethodGet, "/api/bookings", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingsWithToken(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.CreateBooking(&models.Booking{FullName: "Анна", DateTime: "28.08 19:30"}))

	token := loginToken(t, s)
	w := doRequest(s, http.MethodGet, "/api/bookings", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Анна")
}

func TestExportEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.CreateMenuItem(&models.MenuItem{Title: "Борщ", Price: 290, Category: "Еда", IsActive: true}))

	token := loginToken(t, s)
	w := doRequest(s, http.MethodGet, "/api/export/menu", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "menu_export.csv")
	assert.Contains(t, w.Body.String(), "Борщ")

	w = doRequest(s, http.MethodGet, "/api/export/nonsense", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
