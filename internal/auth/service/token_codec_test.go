package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestCodec(t *testing.T, key string, clock *fakeClock) TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(TokenConfig{
		SigningKey: []byte(key),
		Algorithm:  "HS256",
		TTL:        30 * time.Minute,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec(t *testing.T) {
	t.Run("Success_DefaultsToHS256", func(t *testing.T) {
		codec, err := NewTokenCodec(TokenConfig{SigningKey: []byte("k"), TTL: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, "HS256", codec.(*tokenCodec).method.Alg())
	})

	t.Run("Success_HS512", func(t *testing.T) {
		codec, err := NewTokenCodec(TokenConfig{SigningKey: []byte("k"), Algorithm: "HS512", TTL: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, "HS512", codec.(*tokenCodec).method.Alg())
	})

	t.Run("Error_EmptyKey", func(t *testing.T) {
		_, err := NewTokenCodec(TokenConfig{TTL: time.Minute})
		assert.Error(t, err)
	})

	t.Run("Error_NonPositiveTTL", func(t *testing.T) {
		_, err := NewTokenCodec(TokenConfig{SigningKey: []byte("k")})
		assert.Error(t, err)
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		for _, alg := range []string{"RS256", "none", "ES256", "bogus"} {
			_, err := NewTokenCodec(TokenConfig{SigningKey: []byte("k"), Algorithm: alg, TTL: time.Minute})
			assert.Error(t, err, alg)
		}
	})
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	codec := newTestCodec(t, "test-signing-key", clock)

	token, issued, err := codec.Encode("alice")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))
	assert.Equal(t, "alice", issued.Subject)
	assert.Equal(t, clock.now, issued.IssuedAt)
	assert.Equal(t, clock.now.Add(30*time.Minute), issued.ExpiresAt)
	assert.NotEmpty(t, issued.ID)

	clock.Advance(29 * time.Minute)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
	assert.True(t, claims.ExpiresAt.Equal(issued.ExpiresAt))
}

func TestTokenCodec_Encode_EmptySubject(t *testing.T) {
	codec := newTestCodec(t, "k", &fakeClock{now: time.Now()})

	_, _, err := codec.Encode("")
	assert.Error(t, err)
}

func TestTokenCodec_Decode_Errors(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Error_ExpiredAtExactExpiry", func(t *testing.T) {
		clock := &fakeClock{now: start}
		codec := newTestCodec(t, "k", clock)

		token, _, err := codec.Encode("alice")
		require.NoError(t, err)

		clock.Advance(30 * time.Minute)

		_, err = codec.Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("Error_ExpiredLongAfter", func(t *testing.T) {
		clock := &fakeClock{now: start}
		codec := newTestCodec(t, "k", clock)

		token, _, err := codec.Encode("alice")
		require.NoError(t, err)

		clock.Advance(24 * time.Hour)

		_, err = codec.Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		clock := &fakeClock{now: start}
		token, _, err := newTestCodec(t, "key-one", clock).Encode("alice")
		require.NoError(t, err)

		_, err = newTestCodec(t, "key-two", clock).Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalidSignature)
		assert.NotErrorIs(t, err, authDomain.ErrTokenExpired)
	})

	t.Run("Error_WrongKeyAndExpiredReportsSignature", func(t *testing.T) {
		clock := &fakeClock{now: start}
		token, _, err := newTestCodec(t, "key-one", clock).Encode("alice")
		require.NoError(t, err)

		clock.Advance(time.Hour)

		_, err = newTestCodec(t, "key-two", clock).Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalidSignature)
	})

	t.Run("Error_TamperedPayload", func(t *testing.T) {
		clock := &fakeClock{now: start}
		codec := newTestCodec(t, "k", clock)

		token, _, err := codec.Encode("alice")
		require.NoError(t, err)
		other, _, err := codec.Encode("mallory")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		otherParts := strings.Split(other, ".")
		forged := parts[0] + "." + otherParts[1] + "." + parts[2]

		_, err = codec.Decode(forged)
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalidSignature)
	})

	t.Run("Error_DifferentAlgorithm", func(t *testing.T) {
		clock := &fakeClock{now: start}
		claims := jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(start),
			ExpiresAt: jwt.NewNumericDate(start.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
		require.NoError(t, err)

		_, err = newTestCodec(t, "k", clock).Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalidSignature)
	})

	t.Run("Error_Garbage", func(t *testing.T) {
		codec := newTestCodec(t, "k", &fakeClock{now: start})

		for _, token := range []string{"", "garbage", "a.b.c", "not.a.jwt.at.all"} {
			_, err := codec.Decode(token)
			assert.ErrorIs(t, err, authDomain.ErrTokenMalformed, token)
		}
	})

	t.Run("Error_MissingSubject", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(start),
			ExpiresAt: jwt.NewNumericDate(start.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		require.NoError(t, err)

		_, err = newTestCodec(t, "k", &fakeClock{now: start}).Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenMalformed)
	})

	t.Run("Error_MissingExpiry", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:  "alice",
			IssuedAt: jwt.NewNumericDate(start),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		require.NoError(t, err)

		_, err = newTestCodec(t, "k", &fakeClock{now: start}).Decode(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenMalformed)
	})
}
