package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	cfg := DefaultConfig("secret")

	tokenString, err := GenerateToken("64b7f0c2a1b2c3d4e5f60718", "admin@travlr.com", "Admin", cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString, "secret")
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
	assert.Equal(t, "admin@travlr.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "travlr-api", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateToken_NilConfig(t *testing.T) {
	_, err := GenerateToken("id", "a@b.co", "", nil)
	assert.ErrorIs(t, err, ErrConfigRequired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("id", "a@b.co", "", DefaultConfig("secret1"))
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, "secret2")
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultConfig("secret")
	cfg.AccessExpiry = -time.Minute

	tokenString, err := GenerateToken("id", "a@b.co", "", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("invalid.token.string", "secret")
	assert.Error(t, err)
}

func TestValidateToken_NoneAlgorithmRejected(t *testing.T) {
	claims := &Claims{
		UserID: "id",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, "secret")
	assert.Error(t, err)
}

func TestPeekExpiry(t *testing.T) {
	cfg := DefaultConfig("secret")
	cfg.AccessExpiry = 2 * time.Hour

	tokenString, err := GenerateToken("id", "a@b.co", "", cfg)
	require.NoError(t, err)

	// no secret needed
	exp, err := PeekExpiry(tokenString)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), exp, 5*time.Second)

	_, err = PeekExpiry("garbage")
	assert.Error(t, err)
}
