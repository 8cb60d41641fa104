// Command token-generator mints a bearer token for an author using the
// server's configured JWT secret. Tokens are issued outside the API, so this
// is how local and test clients obtain one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "token-generator:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	authorID := fs.Int64("author-id", 0, "author id carried by the token (required)")
	username := fs.String("username", "", "author username carried by the token")
	ttl := fs.Duration("ttl", 0, "token lifetime; defaults to auth.token_lifetime_minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *authorID <= 0 {
		return errors.New("-author-id must be a positive integer")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return generate(cfg.Auth, *authorID, *username, *ttl, out)
}

func generate(cfg config.AuthConfig, authorID int64, username string, ttl time.Duration, out io.Writer) error {
	if ttl > 0 {
		cfg.TokenLifetimeMinutes = int((ttl + time.Minute - 1) / time.Minute)
	}

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}
	token, err := jwtService.GenerateToken(context.Background(), authorID, username)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
