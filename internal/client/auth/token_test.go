package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only"))
	require.NoError(t, err)
	return tok
}

func TestInspectToken(t *testing.T) {
	t.Parallel()

	iat := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(iat)},
		Username:         "ann",
	})

	claims, err := InspectToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann", claims.Username)
	assert.True(t, claims.IssuedAt().Equal(iat))
}

func TestInspectToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := InspectToken(tok)
		assert.ErrorIs(t, err, ErrMalformedToken, tok)
	}
}

func TestIssuedAt_Missing(t *testing.T) {
	t.Parallel()

	claims, err := InspectToken(signToken(t, Claims{Username: "ann"}))
	require.NoError(t, err)
	assert.True(t, claims.IssuedAt().IsZero())
}

func TestBelongsTo(t *testing.T) {
	t.Parallel()

	annTok := signToken(t, Claims{Username: "ann"})
	anonTok := signToken(t, jwt.MapClaims{"iat": 1})

	assert.True(t, BelongsTo(annTok, "ann"))
	assert.False(t, BelongsTo(annTok, "bob"))
	assert.True(t, BelongsTo(anonTok, "bob"))
	assert.True(t, BelongsTo("opaque", "bob"))
}
