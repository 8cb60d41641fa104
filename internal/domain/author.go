package domain

import (
	"fmt"
	"strings"
	"time"
)

// Author is the principal identified by a bearer token.
type Author struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// NewAuthor builds an Author for a token principal. Tokens without a
// username get a stable placeholder derived from the id.
func NewAuthor(id int64, username string) *Author {
	username = strings.TrimSpace(username)
	if username == "" {
		username = fmt.Sprintf("author-%d", id)
	}
	return &Author{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}
