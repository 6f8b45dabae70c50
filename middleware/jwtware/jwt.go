// Package jwtware extracts and verifies bearer tokens for fiber routes.
// It owns no policy beyond "a decodable token was presented": mapping
// failures onto the public error taxonomy is the caller's job via
// Config.ErrorHandler, which keeps this package free of import cycles
// with the root package.
package jwtware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrJWTMissingOrMalformed is returned when no usable token could be
// extracted from the request.
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

// TokenDecoder verifies a raw token and returns the user id it encodes.
// This mirrors the TokenService.Decode method from the root package.
type TokenDecoder interface {
	Decode(token string) (string, error)
}

type Config struct {
	// Decoder is required.
	Decoder TokenDecoder
	// ErrorHandler receives extraction and decode failures. Defaults
	// to bubbling the error to the app-level error handler.
	ErrorHandler fiber.ErrorHandler
	// ContextKey is the locals key the decoded user id is stored
	// under. Defaults to "userID".
	ContextKey string
	// AuthScheme defaults to "Bearer".
	AuthScheme string
	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool
}

// New returns a fiber handler enforcing a decodable bearer token.
func New(config ...Config) fiber.Handler {
	cfg := getDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		userID, err := cfg.Decoder.Decode(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, userID)

		return c.Next()
	}
}

// ExtractRawToken pulls the token out of the authorization header.
func ExtractRawToken(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrJWTMissingOrMalformed
	}

	l := len(authScheme)
	if l == 0 {
		return strings.TrimSpace(header), nil
	}

	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		return strings.TrimSpace(header[l:]), nil
	}

	return "", ErrJWTMissingOrMalformed
}

func getDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Decoder == nil {
		panic("AUTH: JWT middleware configuration: Decoder is required.")
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return err
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "userID"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}
