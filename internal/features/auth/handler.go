package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/travlr/internal/middleware"
	"github.com/xyz-asif/travlr/internal/pkg/jwt"
	"github.com/xyz-asif/travlr/internal/pkg/logger"
	"github.com/xyz-asif/travlr/internal/pkg/response"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

const invalidCredentials = "Invalid email or password"

type Handler struct {
	store  UserStore
	jwtCfg *jwt.Config
	google GoogleVerifier
}

// NewHandler builds the auth handler. google may be nil to disable Google sign-in.
func NewHandler(store UserStore, jwtCfg *jwt.Config, google GoogleVerifier) *Handler {
	return &Handler{store: store, jwtCfg: jwtCfg, google: google}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		code := string(apperrors.ReasonRequired)
		if errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrPasswordTooLong) {
			code = string(apperrors.ReasonInvalidFormat)
		}
		response.BadRequest(c, err.Error(), code)
		return
	}

	existing, err := h.store.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error("register lookup %s: %v", req.Email, err)
		response.DatabaseError(c, "Failed to register user")
		return
	}
	if existing != nil {
		response.BadRequest(c, "Email already registered", "DUPLICATE_EMAIL")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash password for %s: %v", req.Email, err)
		response.InternalServerError(c, "Failed to process password")
		return
	}

	user := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := h.store.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.BadRequest(c, "Email already registered", "DUPLICATE_EMAIL")
			return
		}
		logger.Error("register %s: %v", req.Email, err)
		response.DatabaseError(c, "Failed to register user")
		return
	}

	h.respondWithToken(c, user)
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateLogin(&req); err != nil {
		response.BadRequest(c, err.Error(), string(apperrors.ReasonRequired))
		return
	}

	user, err := h.store.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// the admin client treats a failed lookup as 404
		logger.Error("login lookup %s: %v", req.Email, err)
		response.NotFound(c, "Authentication failed", "AUTH_ERROR")
		return
	}
	if user == nil || user.PasswordHash == "" {
		response.Unauthorized(c, invalidCredentials, "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(c, invalidCredentials, "INVALID_CREDENTIALS")
		return
	}

	h.respondWithToken(c, user)
}

// GoogleLogin godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token, creating the account on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Google ID token"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /login/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		response.ServiceUnavailable(c, "Google sign-in is not configured")
		return
	}

	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	gUser, err := h.google.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("google sign-in rejected: %v", err)
		response.Unauthorized(c, "Invalid Google token", "INVALID_GOOGLE_TOKEN")
		return
	}

	email := NormalizeEmail(gUser.Email)
	user, err := h.store.FindByEmail(c.Request.Context(), email)
	if err != nil {
		logger.Error("google lookup %s: %v", email, err)
		response.DatabaseError(c, "Failed to sign in")
		return
	}

	if user == nil {
		user = &User{Name: gUser.Name, Email: email, GoogleID: gUser.UID}
		if user.Name == "" {
			user.Name = email
		}
		if err := h.store.Create(c.Request.Context(), user); err != nil {
			logger.Error("google register %s: %v", email, err)
			response.DatabaseError(c, "Failed to sign in")
			return
		}
	}

	h.respondWithToken(c, user)
}

// Me godoc
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} User
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.store.FindByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("me %s: %v", userID, err)
		response.DatabaseError(c, "Failed to load user")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found", "NOT_FOUND")
		return
	}

	response.Success(c, user)
}

func (h *Handler) respondWithToken(c *gin.Context, user *User) {
	token, err := jwt.GenerateToken(user.ID.Hex(), user.Email, user.Name, h.jwtCfg)
	if err != nil {
		logger.Error("sign token for %s: %v", user.Email, err)
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
