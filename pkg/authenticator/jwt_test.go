package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenPayload struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

func Test_jwtTokenEngine_GenerateVerify(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(time.Minute, tokenPayload{ID: "user1", Name: "Lucas"})
	require.NoError(t, err)

	var payload tokenPayload
	require.NoError(t, engine.Verify(token, &payload))
	require.Equal(t, tokenPayload{ID: "user1", Name: "Lucas"}, payload)
}

func Test_jwtTokenEngine_VerifyExpired(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(-time.Minute, tokenPayload{ID: "user1"})
	require.NoError(t, err)

	var payload tokenPayload
	require.Error(t, engine.Verify(token, &payload))
}

func Test_jwtTokenEngine_VerifyWrongSecret(t *testing.T) {
	token, err := NewTokenEngine("secret").Generate(time.Minute, tokenPayload{ID: "user1"})
	require.NoError(t, err)

	var payload tokenPayload
	require.Error(t, NewTokenEngine("another-secret").Verify(token, &payload))
}
