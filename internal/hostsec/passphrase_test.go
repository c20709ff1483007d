package hostsec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

func stubPassphrase(t *testing.T, env map[string]string, typed []byte, typedErr error) *int {
	t.Helper()
	origRead, origEnv := readPassword, lookupEnv
	t.Cleanup(func() { readPassword, lookupEnv = origRead, origEnv })

	calls := 0
	readPassword = func(int) ([]byte, error) {
		calls++
		return typed, typedErr
	}
	lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	return &calls
}

func TestReadPassphrase_FromEnv(t *testing.T) {
	calls := stubPassphrase(t, map[string]string{"SEC_PASS": "correct horse"}, nil, nil)
	var out bytes.Buffer

	pw, err := ReadPassphrase("SEC_PASS", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("correct horse"), pw)
	assert.Zero(t, *calls)
	assert.Empty(t, out.String())
}

func TestReadPassphrase_PromptsWhenEnvEmpty(t *testing.T) {
	calls := stubPassphrase(t, map[string]string{"SEC_PASS": ""}, []byte("typed"), nil)
	var out bytes.Buffer

	pw, err := ReadPassphrase("SEC_PASS", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("typed"), pw)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "Store passphrase: \n", out.String())
}

func TestReadPassphrase_Empty(t *testing.T) {
	stubPassphrase(t, nil, []byte{}, nil)

	_, err := ReadPassphrase("", &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrNoPassphrase)
}

func TestReadPassphrase_TerminalError(t *testing.T) {
	boom := errors.New("not a terminal")
	stubPassphrase(t, nil, nil, boom)

	_, err := ReadPassphrase("SEC_PASS", &bytes.Buffer{})
	require.ErrorIs(t, err, boom)
}
