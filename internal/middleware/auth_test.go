package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/session"
	"github.com/medicore/hospital-api/pkg/auth"
)

func newGateRouter(t *testing.T, sessions session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "hospital-api")
	gate := NewAuthMiddleware(sessions, jwtSvc)

	r := gin.New()
	protected := r.Group("/", gate.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "role": UserRole(c)})
	})

	admin := protected.Group("/admin", gate.RequireRole(model.RoleAdmin))
	admin.GET("/users", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuthWithoutCredentials(t *testing.T) {
	r := newGateRouter(t, session.NewMemoryStore(time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.LoginRoute, body["redirect_to"])
}

func TestRequireAuthWithSessionCookie(t *testing.T) {
	sessions := session.NewMemoryStore(time.Minute)
	sess := session.NewSession(3, "Dr. Asha Verma", "asha@medicore.in", model.RoleDoctor)
	require.NoError(t, sessions.Create(context.Background(), sess))

	r := newGateRouter(t, sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sess.ID})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
	assert.Contains(t, w.Body.String(), `"role":"doctor"`)
}

func TestRequireAuthWithStaleCookieFallsBackToBearer(t *testing.T) {
	sessions := session.NewMemoryStore(time.Minute)
	r := newGateRouter(t, sessions)

	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "hospital-api")
	token, err := jwtSvc.Generate(3, "asha@medicore.in", "doctor")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired-session-id"})
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	r := newGateRouter(t, session.NewMemoryStore(time.Minute))

	forged := auth.NewJWTService("other-secret", time.Hour, "hospital-api")
	token, err := forged.Generate(3, "asha@medicore.in", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	sessions := session.NewMemoryStore(time.Minute)

	doctorSess := session.NewSession(3, "Dr. Asha Verma", "asha@medicore.in", model.RoleDoctor)
	adminSess := session.NewSession(1, "Sanjay Rao", "sanjay@medicore.in", model.RoleAdmin)
	require.NoError(t, sessions.Create(context.Background(), doctorSess))
	require.NoError(t, sessions.Create(context.Background(), adminSess))

	r := newGateRouter(t, sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: doctorSess.ID})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.AccessDeniedRoute, body["redirect_to"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: adminSess.ID})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
