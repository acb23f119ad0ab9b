package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateToken("tnt_abc12345", SubjectTenant)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "tnt_abc12345", claims.SubjectID)
	require.Equal(t, SubjectTenant, claims.SubjectType)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestExpiredTokenRejected(t *testing.T) {
	Configure("test-secret", -time.Minute)
	token, err := GenerateToken("team_xyz00000", SubjectTeam)
	require.NoError(t, err)

	Configure("test-secret", time.Hour)
	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	Configure("secret-one", time.Hour)
	token, err := GenerateToken("admin", SubjectAdmin)
	require.NoError(t, err)

	Configure("secret-two", time.Hour)
	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestJWTAuthMiddleware(t *testing.T) {
	Configure("test-secret", time.Hour)

	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTAuthMiddleware(next)

	// no header
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tenants", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tenants", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token
	token, err := GenerateToken("tnt_abc12345", SubjectTenant)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/tenants", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	require.Equal(t, "tnt_abc12345", got.SubjectID)
}
