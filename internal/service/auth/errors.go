package auth

import "errors"

// Token validation failures. The API answers all of them with 401.
var (
	// ErrMissingToken means the request carried no Authorization header.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidToken covers a malformed header, a bad signature, an
	// unexpected signing method, or a token that names no author.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken means the exp claim has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid means the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
)
