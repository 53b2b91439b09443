package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appuser "github.com/myphoto-inc/myphoto/internal/application/user"
	domainUser "github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
	"github.com/myphoto-inc/myphoto/internal/shared/constants"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type mockSessionResolver struct {
	mock.Mock
}

func (m *mockSessionResolver) Resolve(ctx context.Context, plainToken string) (*appuser.ResolvedSession, error) {
	args := m.Called(ctx, plainToken)
	resolved, _ := args.Get(0).(*appuser.ResolvedSession)
	return resolved, args.Error(1)
}

var testCookie = config.CookieConfig{Name: "session", Path: "/"}

func setupGate(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAccessGate(resolver, testCookie, logger.NewNopLogger()).Handle())
	r.NoRoute(func(c *gin.Context) {
		userID, _ := c.Get(constants.ContextKeyUserID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func doRequest(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func aliceSession() *appuser.ResolvedSession {
	return &appuser.ResolvedSession{User: domainUser.Projection{ID: 7, Username: "alice"}}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{
		"/", "/login", "/signup", "/gallery", "/gallery/travel", "/healthz", "/static/app.css",
		"/api/auth/login", "/api/auth/signup", "/api/auth/check-users",
		"/api/auth/webauthn/auth-options", "/api/auth/webauthn/auth-verify",
		"/api/gallery", "/api/gallery/categories/x/unlock", "/api/uploads/a.jpg",
	}
	for _, path := range public {
		assert.True(t, IsPublicPath(path), path)
	}

	private := []string{
		"/admin", "/api/categories", "/api/photos/upload", "/api/auth/me", "/api/auth/logout",
		"/api/auth/webauthn/register-options", "/api/passkeys", "/static",
	}
	for _, path := range private {
		assert.False(t, IsPublicPath(path), path)
	}
}

func TestAccessGate_HardeningHeaders(t *testing.T) {
	w := doRequest(setupGate(&mockSessionResolver{}), "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}

func TestAccessGate_NoSession(t *testing.T) {
	r := setupGate(&mockSessionResolver{})

	t.Run("api path gets 401", func(t *testing.T) {
		w := doRequest(r, "/api/categories", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("page redirects to login", func(t *testing.T) {
		w := doRequest(r, "/admin", "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}

func TestAccessGate_UnknownOrFailingToken(t *testing.T) {
	resolver := &mockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "stale").Return(nil, nil)
	resolver.On("Resolve", mock.Anything, "broken").Return(nil, errors.New("database is locked"))
	r := setupGate(resolver)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/api/photos", "stale").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/api/photos", "broken").Code)
	resolver.AssertExpectations(t)
}

func TestAccessGate_ValidSession(t *testing.T) {
	resolver := &mockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "good").Return(aliceSession(), nil)
	r := setupGate(resolver)

	w := doRequest(r, "/api/categories", "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
}

func TestAccessGate_LoginRedirectsSignedInUser(t *testing.T) {
	resolver := &mockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "good").Return(aliceSession(), nil)
	r := setupGate(resolver)

	w := doRequest(r, "/login", "good")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	w = doRequest(r, "/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessGate_PublicPathSkipsLookup(t *testing.T) {
	resolver := &mockSessionResolver{}
	r := setupGate(resolver)

	w := doRequest(r, "/api/gallery", "anything")
	assert.Equal(t, http.StatusOK, w.Code)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}
