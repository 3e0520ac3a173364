package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
	"github.com/jihan212/BUBT-DX/internal/security"
)

func identityEcho(t *testing.T, wantID common.UUID, wantRole user.Role) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantID, id)
		role, ok := RoleFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantRole, role)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, "student", time.Minute)
	require.NoError(t, err)

	mw := NewAuthMiddleware(provider)
	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(identityEcho(t, userID, user.RoleStudent)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticate_SessionCookie(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, "recruiter", time.Minute)
	require.NoError(t, err)

	mw := NewAuthMiddleware(provider)
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()

	mw.Authenticate(identityEcho(t, userID, user.RoleRecruiter)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	mw := NewAuthMiddleware(security.NewJWTProvider("test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", time.Minute)
	require.NoError(t, err)

	mw := NewAuthMiddleware(provider)
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	rec := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a tampered token")
	})).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentify_AnonymousPassesThrough(t *testing.T) {
	mw := NewAuthMiddleware(security.NewJWTProvider("test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()

	mw.Identify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := UserIDFromContext(r.Context())
		require.False(t, ok)
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestIdentify_ResolvesValidSession(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, "recruiter", time.Minute)
	require.NoError(t, err)

	mw := NewAuthMiddleware(provider)
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Identify(identityEcho(t, userID, user.RoleRecruiter)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", time.Minute)
	require.NoError(t, err)

	mw := NewAuthMiddleware(provider)
	protected := mw.Authenticate(RequireRole(user.RoleRecruiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("students must not reach recruiter routes")
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimiterWindow(t *testing.T) {
	limiter := NewRateLimiter()
	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow("key", 3, time.Minute))
	}
	require.False(t, limiter.Allow("key", 3, time.Minute))
	require.True(t, limiter.Allow("other", 3, time.Minute))
}
