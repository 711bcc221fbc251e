package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Formatting(t *testing.T) {
	e := &Error{Kind: KindInvalidCredentials, Op: "login", Status: 401, Message: "Invalid password."}
	assert.Equal(t, "login: invalid credentials (status 401): Invalid password.", e.Error())

	cause := errors.New("dial tcp: refused")
	e = &Error{Kind: KindRemoteUnavailable, Op: "list stories", Err: cause}
	assert.Equal(t, "list stories: remote unavailable: dial tcp: refused", e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestError_IsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("login failed: %w", &Error{Kind: KindInvalidCredentials, Status: 401})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.False(t, (&Error{Kind: KindNotFound}).Is(errors.New("not found")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUsernameTaken, KindOf(fmt.Errorf("wrap: %w", &Error{Kind: KindUsernameTaken})))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindUnknown:            "unknown",
		KindRemoteUnavailable:  "remote unavailable",
		KindInvalidCredentials: "invalid credentials",
		KindUsernameTaken:      "username taken",
		KindUnauthorized:       "unauthorized",
		KindNotFound:           "not found",
		KindInvalidInput:       "invalid input",
		Kind(99):               "unknown",
	}
	for k, want := range kinds {
		assert.Equal(t, want, k.String())
	}
}

func TestStatusKinds(t *testing.T) {
	assert.Equal(t, KindUsernameTaken, signupKinds.kind(409))
	assert.Equal(t, KindInvalidCredentials, loginKinds.kind(401))
	assert.Equal(t, KindUnauthorized, mutationKinds.kind(401))
	assert.Equal(t, KindInvalidCredentials, restoreKinds.kind(401))
	assert.Equal(t, KindRemoteUnavailable, readKinds.kind(418))
	assert.Equal(t, KindRemoteUnavailable, loginKinds.kind(503))
	var none statusKinds
	assert.Equal(t, KindRemoteUnavailable, none.kind(404))
}
