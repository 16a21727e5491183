package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/travlr/internal/config"
	"github.com/xyz-asif/travlr/internal/features/auth"
	"github.com/xyz-asif/travlr/internal/features/trips"
	"github.com/xyz-asif/travlr/internal/pkg/jwt"
	"github.com/xyz-asif/travlr/internal/pkg/ratelimit"
)

// Dependencies built by main and shared across features.
type Dependencies struct {
	DB          *mongo.Database
	Images      trips.ImageUploader // nil when Cloudinary is not configured
	AuthLimiter *ratelimit.RateLimiter
}

// JWTConfig derives token settings from the loaded configuration.
func JWTConfig(cfg *config.Config) *jwt.Config {
	jwtCfg := jwt.DefaultConfig(cfg.JWTSecret)
	if cfg.JWTExpireHours > 0 {
		jwtCfg.AccessExpiry = time.Duration(cfg.JWTExpireHours) * time.Hour
	}
	if cfg.JWTIssuer != "" {
		jwtCfg.Issuer = cfg.JWTIssuer
	}
	return jwtCfg
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, deps Dependencies) {
	api := router.Group("/api")

	jwtCfg := JWTConfig(cfg)

	auth.RegisterRoutes(api, deps.DB, jwtCfg, cfg.GoogleClientID, deps.AuthLimiter)
	trips.RegisterRoutes(api, deps.DB, deps.Images, jwtCfg.Secret)
}
