package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and checking author bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token naming authorID. username is
	// optional and seeds the author's profile on first use.
	GenerateToken(ctx context.Context, authorID int64, username string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a bearer token.
type Claims struct {
	// AuthorID is the author the token was issued for, carried in the "id" claim.
	AuthorID int64 `json:"id"`

	// Username is the optional display name carried in the "username" claim.
	Username string `json:"username,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
