package authapi_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authapi "github.com/nexa-labs/go-auth-api"
)

var testSigningKey = []byte("test-signing-key")

func TestTokenServiceRoundTrip(t *testing.T) {
	service := authapi.NewTokenService(testSigningKey, nil)

	token, err := service.Issue("59ae7000-bfd8-4273-ab27-d5fa9aaaaaaa")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "59ae7000-bfd8-4273-ab27-d5fa9aaaaaaa", userID)
}

func TestTokenServiceDecodeExpired(t *testing.T) {
	service := authapi.NewTokenService(testSigningKey, nil)

	// Craft a token whose 12h window closed an hour ago.
	now := time.Now().Add(-13 * time.Hour)
	claims := &authapi.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(12 * time.Hour)),
		},
		UID: "user-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)

	_, err = service.Decode(token)
	require.Error(t, err)

	kind, ok := authapi.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, authapi.KindTokenExpired, kind)

	res := authapi.Classify(err)
	assert.Equal(t, 401, res.Status)
	assert.Equal(t, 15, res.ErrorCode)
}

func TestTokenServiceDecodeFailures(t *testing.T) {
	service := authapi.NewTokenService(testSigningKey, nil)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &authapi.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UID: "user-1",
	}).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong signature", otherKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Decode(tt.token)
			require.Error(t, err)

			// Malformed tokens are a generic authentication failure,
			// never the expired code.
			kind, ok := authapi.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, authapi.KindUnauthorized, kind)
		})
	}
}

func TestTokenServiceIssueLifetime(t *testing.T) {
	service := authapi.NewTokenService(testSigningKey, nil)

	token, err := service.Issue("user-1")
	require.NoError(t, err)

	claims := &authapi.TokenClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return testSigningKey, nil
	})
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, authapi.TokenLifetime, lifetime)
}
