package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	coresvc "github.com/custodia-labs/cvboard/internal/core/services"
)

func TestConfigShow(t *testing.T) {
	newTestEnv(t, false)

	out, err := run(t, "", "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[Storage]")
	assert.Contains(t, out, "[Session]")
	assert.Contains(t, out, "Password: (built-in)")
}

func TestConfigSetAndGet(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := run(t, "", "config", "set", coresvc.KeySessionWindow, "30")
	require.NoError(t, err)
	assert.Contains(t, out, coresvc.KeySessionWindow+" = 30")

	v, ok := env.config.Get(coresvc.KeySessionWindow)
	require.True(t, ok)
	assert.EqualValues(t, 30, v)

	out, err = run(t, "", "config", "get", coresvc.KeySessionWindow)
	require.NoError(t, err)
	assert.Contains(t, out, "30")
}

func TestConfigGet_NotSet(t *testing.T) {
	newTestEnv(t, false)

	out, err := run(t, "", "config", "get", coresvc.KeyImagesRate)

	require.NoError(t, err)
	assert.Contains(t, out, "(not set)")
}

func TestConfigSet_RejectsUnknownKey(t *testing.T) {
	newTestEnv(t, false)

	_, err := run(t, "", "config", "set", "colour", "red")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_RejectsBadNumber(t *testing.T) {
	newTestEnv(t, false)

	_, err := run(t, "", "config", "set", coresvc.KeyAutosaveDelay, "-5")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_RejectsPasswordHash(t *testing.T) {
	newTestEnv(t, false)

	_, err := run(t, "", "config", "set", coresvc.KeyAuthPasswordHash, "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_StorageBackend(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := run(t, "", "config", "set", coresvc.KeyStorageBackend, "file")
	require.NoError(t, err)

	v, ok := env.config.Get(coresvc.KeyStorageBackend)
	require.True(t, ok)
	assert.Equal(t, "file", v)

	_, err = run(t, "", "config", "set", coresvc.KeyStorageBackend, "floppy")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := run(t, "", "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, env.config.Path())
}

func TestConfigPassword(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := run(t, "s3cret\ns3cret\n", "config", "password")

	require.NoError(t, err)
	assert.Contains(t, out, "Password updated.")
	_, ok := env.config.Get(coresvc.KeyAuthPasswordHash)
	assert.True(t, ok)
}

func TestConfigPassword_Mismatch(t *testing.T) {
	newTestEnv(t, false)

	_, err := run(t, "one\ntwo\n", "config", "password")

	assert.EqualError(t, err, "passwords do not match")
}

func TestParseSettingValue(t *testing.T) {
	v, err := parseSettingValue(coresvc.KeyImagesRate, "2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = parseSettingValue(coresvc.KeySessionPoll, "60")
	require.NoError(t, err)
	assert.Equal(t, 60, v)

	v, err = parseSettingValue(coresvc.KeyStorageDir, "/tmp/cv")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cv", v)
}
