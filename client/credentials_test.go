package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIKey_Trims(t *testing.T) {
	key, err := LoadAPIKey(MapSource{APIKeyEnv: "  secret-key \n"})
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key)
}

func TestLoadAPIKey_Missing(t *testing.T) {
	_, err := LoadAPIKey(MapSource{})
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.True(t, strings.HasPrefix(err.Error(), "DIXA_API_KEY environment variable is not set"))
	assert.Contains(t, err.Error(), "hosting environment")
}

func TestLoadAPIKey_Empty(t *testing.T) {
	for _, v := range []string{"", "   ", "\t\n"} {
		_, err := LoadAPIKey(MapSource{APIKeyEnv: v})
		require.Error(t, err, "value %q", v)
		assert.True(t, IsConfigurationError(err))
	}
	_, err := LoadAPIKey(MapSource{APIKeyEnv: "  "})
	assert.Contains(t, err.Error(), "is set but is empty")
}

func TestEnvSource_ReadsEachCall(t *testing.T) {
	t.Setenv(APIKeyEnv, "first-key-value")
	key, err := LoadAPIKey(EnvSource{})
	require.NoError(t, err)
	assert.Equal(t, "first-key-value", key)

	t.Setenv(APIKeyEnv, "second-key-value")
	key, err = LoadAPIKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "second-key-value", key)
}
