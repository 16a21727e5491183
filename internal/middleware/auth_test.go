package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/travlr/internal/pkg/jwt"
)

const testSecret = "test-secret"

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.Status(500)
			return
		}
		c.JSON(200, gin.H{"userId": claims.UserID, "email": c.GetString(ContextEmail)})
	})
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	w := doRequest(newProtectedRouter(), "")

	require.Equal(t, 401, w.Code)
	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, float64(401), body["statusCode"])
	require.Equal(t, "Authorization header required", body["message"])
	require.Equal(t, "MISSING_AUTH_HEADER", body["code"])
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r := newProtectedRouter()

	for _, header := range []string{"Bearer", "Bearer   ", "Basic abc", "sometoken"} {
		w := doRequest(r, header)
		require.Equal(t, 401, w.Code, header)
		require.Equal(t, "MISSING_TOKEN", decode(t, w)["code"], header)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := jwt.GenerateToken("u1", "a@travlr.com", "", jwt.DefaultConfig("other-secret"))
	require.NoError(t, err)

	w := doRequest(newProtectedRouter(), "Bearer "+token)
	require.Equal(t, 403, w.Code)
	require.Equal(t, "TOKEN_INVALID", decode(t, w)["code"])
}

func TestAuthMiddleware_Expired(t *testing.T) {
	cfg := jwt.DefaultConfig(testSecret)
	cfg.AccessExpiry = -time.Minute
	token, err := jwt.GenerateToken("u1", "a@travlr.com", "", cfg)
	require.NoError(t, err)

	w := doRequest(newProtectedRouter(), "Bearer "+token)
	require.Equal(t, 403, w.Code)
}

func TestAuthMiddleware_Valid(t *testing.T) {
	token, err := jwt.GenerateToken("u1", "a@travlr.com", "", jwt.DefaultConfig(testSecret))
	require.NoError(t, err)

	w := doRequest(newProtectedRouter(), "bearer "+token)
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, "a@travlr.com", body["email"])
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrMissingAuthHeader)

	_, err = ExtractBearerToken("Bearer")
	assert.ErrorIs(t, err, ErrMissingToken)
}
