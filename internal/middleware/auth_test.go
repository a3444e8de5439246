package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
)

const testSecret = "test-secret"

type fakeRoles struct {
	roles map[string]string
	err   error
}

func (f *fakeRoles) EnsureRole(ctx context.Context, userID string) (*models.UserRole, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		role = models.RoleUser
	}
	return &models.UserRole{UserID: userID, Role: role}, nil
}

func signToken(t *testing.T, secret, subject string, expires time.Time) string {
	t.Helper()
	claims := Claims{
		Email: subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(roles RoleResolver) (*gin.Engine, *policy.Principal) {
	gin.SetMode(gin.TestMode)
	captured := &policy.Principal{}
	r := gin.New()
	r.Use(Auth(testSecret, roles, "es"))
	r.GET("/me", func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		*captured = p
		c.Status(http.StatusOK)
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestAuth(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"valid bearer token", "Bearer " + signToken(t, testSecret, "u1", future), "", http.StatusOK},
		{"token in query", "", signToken(t, testSecret, "u1", future), http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", "u1", future), "", http.StatusUnauthorized},
		{"expired token", "Bearer " + signToken(t, testSecret, "u1", time.Now().Add(-time.Hour)), "", http.StatusUnauthorized},
		{"no subject", "Bearer " + signToken(t, testSecret, "", future), "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newAuthRouter(&fakeRoles{})
			target := "/me"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuth_BuildsPrincipal(t *testing.T) {
	router, captured := newAuthRouter(&fakeRoles{roles: map[string]string{"a1": models.RoleAdmin}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "a1", time.Now().Add(time.Hour)))
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", captured.UserID)
	assert.Equal(t, "a1@example.com", captured.Email)
	assert.Equal(t, models.RoleAdmin, captured.Role)
	assert.Equal(t, "en-US", captured.Locale)
}

func TestAuth_RoleResolutionFailure(t *testing.T) {
	router, _ := newAuthRouter(&fakeRoles{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u1", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	router, _ := newAuthRouter(&fakeRoles{roles: map[string]string{"a1": models.RoleAdmin, "g1": models.RoleGod}})

	for user, want := range map[string]int{"u1": http.StatusForbidden, "a1": http.StatusOK, "g1": http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, user, time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, user)
	}
}
