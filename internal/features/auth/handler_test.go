package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/travlr/internal/pkg/jwt"
	"github.com/xyz-asif/travlr/internal/pkg/ratelimit"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

const testSecret = "auth-test-secret"

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*User
	findErr error
}

var _ UserStore = (*memoryUsers)(nil)

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*User{}}
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byEmail[email], nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) Create(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return apperrors.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	return nil
}

type stubGoogle struct {
	user *GoogleUser
	err  error
}

func (s stubGoogle) Verify(context.Context, string) (*GoogleUser, error) {
	return s.user, s.err
}

func newRouter(store UserStore, google GoogleVerifier, limiter *ratelimit.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Mount(r.Group("/api"), NewHandler(store, jwt.DefaultConfig(testSecret), google), testSecret, limiter)
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestRegisterAndLogin(t *testing.T) {
	store := newMemoryUsers()
	r := newRouter(store, nil, nil)

	w := post(r, "/api/register", RegisterRequest{Name: "Admin", Email: " Admin@Travlr.com ", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	claims, err := jwt.ValidateToken(tokenFrom(t, w), testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@travlr.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)

	stored := store.byEmail["admin@travlr.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)

	w = post(r, "/api/login", LoginRequest{Email: "admin@travlr.com", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	tokenFrom(t, w)

	w = post(r, "/api/login", LoginRequest{Email: "admin@travlr.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, "/api/login", LoginRequest{Email: "nobody@travlr.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	r := newRouter(newMemoryUsers(), nil, nil)

	w := post(r, "/api/register", RegisterRequest{Email: "a@travlr.com", Password: "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "All fields required", body["message"])

	w = post(r, "/api/register", RegisterRequest{Name: "A", Email: "not-an-email", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/register", RegisterRequest{Name: "A", Email: "long@travlr.com", Password: strings.Repeat("x", 80)})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_FORMAT", body["code"])

	require.Equal(t, http.StatusOK, post(r, "/api/register", RegisterRequest{Name: "A", Email: "a@travlr.com", Password: "x"}).Code)
	w = post(r, "/api/register", RegisterRequest{Name: "B", Email: "A@travlr.com", Password: "y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_StoreErrorIs404(t *testing.T) {
	store := newMemoryUsers()
	store.findErr = errors.New("server selection timeout")
	r := newRouter(store, nil, nil)

	w := post(r, "/api/login", LoginRequest{Email: "a@travlr.com", Password: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(r, "/api/login", LoginRequest{Email: "", Password: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoogleLogin(t *testing.T) {
	store := newMemoryUsers()
	google := stubGoogle{user: &GoogleUser{UID: "g-1", Email: "Traveler@gmail.com", Name: "Traveler", EmailVerified: true}}
	r := newRouter(store, google, nil)

	w := post(r, "/api/login/google", GoogleLoginRequest{IDToken: "id-token"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tokenFrom(t, w)
	require.NotNil(t, store.byEmail["traveler@gmail.com"])
	assert.Equal(t, "g-1", store.byEmail["traveler@gmail.com"].GoogleID)

	r = newRouter(store, stubGoogle{err: ErrEmailNotVerified}, nil)
	w = post(r, "/api/login/google", GoogleLoginRequest{IDToken: "id-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = newRouter(store, nil, nil)
	w = post(r, "/api/login/google", GoogleLoginRequest{IDToken: "id-token"})
	assert.Equal(t, http.StatusNotFound, w.Code, "route is not mounted without a client ID")
}

func TestMe(t *testing.T) {
	store := newMemoryUsers()
	r := newRouter(store, nil, nil)

	token := tokenFrom(t, post(r, "/api/register", RegisterRequest{Name: "Admin", Email: "admin@travlr.com", Password: "pw"}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "admin@travlr.com", body["email"])
	assert.NotContains(t, body, "hash")
	assert.NotContains(t, body, "passwordHash")
}

func TestLogin_RateLimited(t *testing.T) {
	r := newRouter(newMemoryUsers(), nil, ratelimit.New(0.001, 2))

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusUnauthorized, post(r, "/api/login", LoginRequest{Email: "a@travlr.com", Password: "x"}).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(r, "/api/login", LoginRequest{Email: "a@travlr.com", Password: "x"}).Code)
}
