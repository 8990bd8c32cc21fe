// Package crypto stores the database encryption key outside the database.
package crypto

import (
	"errors"
	"os"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "salesdesk"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the platform keyring when set
	EnvKey = "SALESDESK_DB_KEY"
)

// ErrKeyNotFound means no key has been stored yet, i.e. first run
var ErrKeyNotFound = errors.New("encryption key not found")

// NewKeyring returns the environment keyring when SALESDESK_DB_KEY is set,
// otherwise the best platform implementation
func NewKeyring() Keyring {
	if os.Getenv(EnvKey) != "" {
		return &envKeyring{}
	}
	return newPlatformKeyring()
}
