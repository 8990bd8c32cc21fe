package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKeyring reads the key from SALESDESK_DB_KEY. It cannot persist keys.
type envKeyring struct{}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%w: %s environment variable not set", ErrKeyNotFound, EnvKey)
	}
	return key, nil
}

func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("no keyring on this platform: export %s with your database password", EnvKey)
}

func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("no keyring on this platform: unset %s manually", EnvKey)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
