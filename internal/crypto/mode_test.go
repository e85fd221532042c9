package crypto

import (
	"strings"
	"testing"

	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMode_KeyResolution(t *testing.T) {
	server := []byte(strings.Repeat("s", KeyLen))
	personal := []byte(strings.Repeat("p", KeyLen))

	var zero Mode
	require.False(t, zero.IsPersonal())
	require.Equal(t, server, zero.Key(server))
	require.Equal(t, "server", ServerKeyMode().String())

	m := PersonalKeyMode(personal)
	require.True(t, m.IsPersonal())
	require.Equal(t, personal, m.Key(server))
	require.Equal(t, "personal", m.String())
}

func TestServerKeyFromSecret(t *testing.T) {
	key, err := ServerKeyFromSecret(strings.Repeat("k", 40))
	require.NoError(t, err)
	require.Len(t, key, KeyLen)

	_, err = ServerKeyFromSecret("too-short")
	require.Error(t, err)
}

func TestParsePersonalKey_Rejects(t *testing.T) {
	_, err := ParsePersonalKey("abcd")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ParsePersonalKey(strings.Repeat("zz", KeyLen))
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
