package routes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xyz-asif/travlr/internal/config"
)

func TestJWTConfig(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTExpireHours: 12, JWTIssuer: "travlr-test"}

	jwtCfg := JWTConfig(cfg)
	assert.Equal(t, "s", jwtCfg.Secret)
	assert.Equal(t, 12*time.Hour, jwtCfg.AccessExpiry)
	assert.Equal(t, "travlr-test", jwtCfg.Issuer)

	jwtCfg = JWTConfig(&config.Config{JWTSecret: "s"})
	assert.Equal(t, time.Hour, jwtCfg.AccessExpiry)
	assert.Equal(t, "travlr-api", jwtCfg.Issuer)
}
