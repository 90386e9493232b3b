package authenticator_test

import (
	"testing"
	"time"

	"github.com/greenquest-lab/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, authenticator.User{ID: "user1", Email: "a@b.c"})
	require.Nil(t, err)

	var user authenticator.User
	err = engine.Verify(token, &user)
	require.NoError(t, err)
	require.Equal(t, "user1", user.ID)
	require.Equal(t, "a@b.c", user.Email)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Nanosecond, "abc")
	require.Nil(t, err)

	time.Sleep(time.Millisecond)

	var msg string
	err = engine.Verify(token, &msg)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	err = authenticator.NewTokenEngine("other").Verify(token, &msg)
	require.Error(t, err)
}
