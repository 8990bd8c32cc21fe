package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestNewKeyring_PrefersEnvironment(t *testing.T) {
	t.Setenv(EnvKey, "s3cret")

	k := NewKeyring()
	require.IsType(t, &envKeyring{}, k)
	assert.True(t, k.IsAvailable())

	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)
}

func TestEnvKeyring_Unset(t *testing.T) {
	t.Setenv(EnvKey, "")
	k := &envKeyring{}

	_, err := k.GetKey()
	assert.EqualError(t, err, "encryption key not found: SALESDESK_DB_KEY environment variable not set")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.False(t, k.IsAvailable())
	assert.EqualError(t, k.SetKey(""), "password cannot be empty")
	assert.ErrorContains(t, k.SetKey("pw"), "export SALESDESK_DB_KEY")
}

func TestSystemKeyring_Lifecycle(t *testing.T) {
	keyring.MockInit()
	k := newSystemKeyring()

	_, err := k.GetKey()
	require.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorContains(t, err, "salesdesk keychain entry")

	assert.True(t, k.IsAvailable())
	_, err = keyring.Get(ServiceName, KeyName+".check")
	assert.ErrorIs(t, err, keyring.ErrNotFound, "availability check cleans up")

	assert.EqualError(t, k.SetKey(""), "password cannot be empty")
	require.NoError(t, k.SetKey("hunter2"))

	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", key)

	require.NoError(t, k.DeleteKey())
	require.NoError(t, k.DeleteKey(), "deleting a missing key is fine")
	_, err = k.GetKey()
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSystemKeyring_StoreFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("keychain locked"))
	k := newSystemKeyring()

	_, err := k.GetKey()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorContains(t, err, "set SALESDESK_DB_KEY to bypass it")
	assert.False(t, k.IsAvailable())
	assert.ErrorContains(t, k.SetKey("pw"), "keychain locked")
}
