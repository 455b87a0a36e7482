package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/noortales/backend/pkg/config"
)

const testJWTSecret = "test-jwt-secret"

func testAuthConfig() *cfgpkg.Config {
	cfg := &cfgpkg.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.AdminKey = "admin-key-1"
	return cfg
}

func signToken(t *testing.T, secret string, claims SessionClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func authRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "email": UserEmail(c)})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := authRouter(AuthMiddleware(testAuthConfig()))
	token := signToken(t, testJWTSecret, SessionClaims{
		Email:          "u@example.com",
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})

	w := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
	require.Contains(t, w.Body.String(), "u@example.com")
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r := authRouter(AuthMiddleware(testAuthConfig()))
	require.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := authRouter(AuthMiddleware(testAuthConfig()))
	token := signToken(t, "other-secret", SessionClaims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})
	require.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := authRouter(AuthMiddleware(testAuthConfig()))
	token := signToken(t, testJWTSecret, SessionClaims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(-time.Hour).Unix()},
	})
	require.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestAuthMiddleware_MissingSubject(t *testing.T) {
	r := authRouter(AuthMiddleware(testAuthConfig()))
	token := signToken(t, testJWTSecret, SessionClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})
	require.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestOptionalAuthMiddleware_PassesWithoutToken(t *testing.T) {
	r := authRouter(OptionalAuthMiddleware(testAuthConfig()))

	w := doGet(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestOptionalAuthMiddleware_ResolvesUser(t *testing.T) {
	r := authRouter(OptionalAuthMiddleware(testAuthConfig()))
	token := signToken(t, testJWTSecret, SessionClaims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})

	w := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := authRouter(AdminAuthMiddleware(testAuthConfig()))

	require.Equal(t, http.StatusOK, doGet(r, "Bearer admin-key-1").Code)
	require.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer wrong-key").Code)
	require.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
}

func TestAdminAuthMiddleware_EmptyKeyNeverMatches(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Auth.AdminKey = ""
	r := authRouter(AdminAuthMiddleware(cfg))
	require.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer ").Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Request.Header.Set("Authorization", "Bearer abc")
	require.Equal(t, "abc", bearerToken(c))

	c.Request.Header.Set("Authorization", "bearer abc")
	require.Equal(t, "abc", bearerToken(c))

	c.Request.Header.Set("Authorization", "Basic abc")
	require.Empty(t, bearerToken(c))

	c.Request.Header.Del("Authorization")
	require.Empty(t, bearerToken(c))
}
