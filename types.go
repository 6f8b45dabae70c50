package authapi

import "fmt"

// Logger is the minimal printf-style logger the package depends on.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenIssuer produces bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenDecoder verifies a bearer token and returns the user id it
// carries. Expired tokens surface as ErrTokenExpired so callers can
// report expiry distinctly from a malformed token.
type TokenDecoder interface {
	Decode(token string) (string, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
