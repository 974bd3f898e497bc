package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	token, err := NewStaticProvider("  abc  ").Token()
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	_, err = NewStaticProvider("").Token()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("FRIENDDECK_TEST_TOKEN", "from-env")

	token, err := NewEnvProvider("FRIENDDECK_TEST_TOKEN").Token()
	require.NoError(t, err)
	require.Equal(t, "from-env", token)

	_, err = NewEnvProvider("FRIENDDECK_TEST_TOKEN_UNSET").Token()
	require.ErrorIs(t, err, ErrNoToken)
}
