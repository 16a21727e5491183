package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var ErrEmailNotVerified = errors.New("google account email is not verified")

// GoogleUser is what a verified Google ID token tells us about its holder.
type GoogleUser struct {
	UID           string
	Email         string
	Name          string
	EmailVerified bool
}

// GoogleVerifier checks a Google ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleUser, error)
}

// IDTokenVerifier validates tokens issued for clientID with Google's public keys.
type IDTokenVerifier struct {
	clientID string
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", err)
	}

	user := &GoogleUser{UID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		user.Name = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		user.EmailVerified = verified
	}

	if !user.EmailVerified || user.Email == "" {
		return nil, ErrEmailNotVerified
	}
	return user, nil
}
