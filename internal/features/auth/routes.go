package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/travlr/internal/middleware"
	"github.com/xyz-asif/travlr/internal/pkg/jwt"
	"github.com/xyz-asif/travlr/internal/pkg/ratelimit"
)

// RegisterRoutes mounts the auth endpoints backed by MongoDB.
// Google sign-in is enabled only when googleClientID is set.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, jwtCfg *jwt.Config, googleClientID string, limiter *ratelimit.RateLimiter) {
	var google GoogleVerifier
	if googleClientID != "" {
		google = NewIDTokenVerifier(googleClientID)
	}

	Mount(router, NewHandler(NewRepository(db), jwtCfg, google), jwtCfg.Secret, limiter)
}

// Mount wires handler onto router. Sign-in endpoints are rate limited per client IP.
func Mount(router *gin.RouterGroup, handler *Handler, jwtSecret string, limiter *ratelimit.RateLimiter) {
	public := router.Group("")
	if limiter != nil {
		public.Use(ratelimit.Middleware(limiter))
	}
	{
		public.POST("/register", handler.Register)
		public.POST("/login", handler.Login)
		if handler.google != nil {
			public.POST("/login/google", handler.GoogleLogin)
		}
	}

	router.GET("/me", middleware.Auth(jwtSecret), handler.Me)
}
