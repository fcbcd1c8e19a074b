package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for authentication configuration
type Auth struct {
	jwtSecret   string
	tokenExpiry time.Duration
	noAuth      bool
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "Secret key for signing access tokens (required unless --no-auth)",
			Sources:     cli.EnvVars("CRIVELLO_JWT_SECRET"),
			Destination: &a.jwtSecret,
		},
		&cli.DurationFlag{
			Name:        "token-expiry",
			Usage:       "Access token lifetime",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("CRIVELLO_TOKEN_EXPIRY"),
			Destination: &a.tokenExpiry,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run every request as a fixed admin identity (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("CRIVELLO_NO_AUTH"),
			Destination: &a.noAuth,
		},
	}
}

// Validate checks that the auth configuration is usable
func (a *Auth) Validate() error {
	if !a.noAuth && a.jwtSecret == "" {
		return goerr.New("jwt-secret is required unless no-auth mode is enabled")
	}
	return nil
}

// JWTSecret returns the token signing key
func (a *Auth) JWTSecret() []byte {
	return []byte(a.jwtSecret)
}

// TokenExpiry returns the access token lifetime
func (a *Auth) TokenExpiry() time.Duration {
	return a.tokenExpiry
}

// NoAuth reports whether no-auth development mode is enabled
func (a *Auth) NoAuth() bool {
	return a.noAuth
}
