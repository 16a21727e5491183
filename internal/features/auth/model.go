package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that may manage trips.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"hash,omitempty" json:"-"`
	GoogleID     string             `bson:"googleId,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name" example:"Admin"`
	Email    string `json:"email" example:"admin@travlr.com"`
	Password string `json:"password" example:"correct horse battery"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" example:"admin@travlr.com"`
	Password string `json:"password" example:"correct horse battery"`
}

// GoogleLoginRequest carries a Google ID token obtained by the client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// TokenResponse is returned by every successful sign-in.
type TokenResponse struct {
	Token string `json:"token"`
}
