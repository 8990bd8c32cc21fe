package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// systemKeyring keeps the database key in the OS credential store
// (Keychain on macOS). It is the platform keyring on darwin only.
type systemKeyring struct {
	service string
	account string
}

func newSystemKeyring() *systemKeyring {
	return &systemKeyring{service: ServiceName, account: KeyName}
}

func (k *systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(k.service, k.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w in the %s keychain entry", ErrKeyNotFound, k.service)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read the keychain (set %s to bypass it): %w", EnvKey, err)
	}
	if key == "" {
		return "", fmt.Errorf("%w: the %s keychain entry is empty", ErrKeyNotFound, k.service)
	}
	return key, nil
}

func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(k.service, k.account, password); err != nil {
		return fmt.Errorf("failed to store key in keychain: %w", err)
	}
	return nil
}

// DeleteKey removes the stored key. Deleting a missing key is not an error.
func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(k.service, k.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete key from keychain: %w", err)
	}
	return nil
}

// IsAvailable writes and removes a throwaway entry next to the real one
func (k *systemKeyring) IsAvailable() bool {
	probe := k.account + ".check"
	if err := keyring.Set(k.service, probe, "ok"); err != nil {
		return false
	}
	_ = keyring.Delete(k.service, probe)
	return true
}
