package authapi

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenLifetime is how long an issued bearer token stays valid.
// Validity is solely a function of signature and expiry; there is no
// server-side revocation.
const TokenLifetime = 12 * time.Hour

// TokenClaims is the claim set carried by every bearer token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// UserID returns the user id encoded in the token.
func (c *TokenClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// TokenService signs and verifies bearer tokens. The signing key is
// process-wide configuration, set once at startup.
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
	logger     Logger
	now        func() time.Time
}

var (
	_ TokenIssuer  = (*TokenService)(nil)
	_ TokenDecoder = (*TokenService)(nil)
)

// NewTokenService creates a TokenService with the fixed token lifetime.
func NewTokenService(signingKey []byte, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenService{
		signingKey: signingKey,
		lifetime:   TokenLifetime,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue produces a signed token for the given user id, expiring
// TokenLifetime from now.
func (ts *TokenService) Issue(userID string) (string, error) {
	now := ts.now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.lifetime)),
		},
		UID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Decode verifies signature and expiry and returns the user id. Expiry
// surfaces as ErrTokenExpired so the caller can answer with the token
// expired code instead of a generic authentication failure.
func (ts *TokenService) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token decode: unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", goerrors.Wrap(err, goerrors.CategoryAuth, "invalid token").
			WithTextCode(string(KindUnauthorized)).
			WithCode(goerrors.CodeUnauthorized)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID() == "" {
		return "", ErrUnauthorized
	}

	return claims.UserID(), nil
}

// decodeExpired verifies the signature but skips claim validation, so
// the refresh flow can accept a token past its lifetime.
func (ts *TokenService) decodeExpired(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryAuth, "invalid token").
			WithTextCode(string(KindUnauthorized)).
			WithCode(goerrors.CodeUnauthorized)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || claims.UserID() == "" {
		return "", ErrUnauthorized
	}

	return claims.UserID(), nil
}
