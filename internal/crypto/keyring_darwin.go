//go:build darwin

package crypto

func newPlatformKeyring() Keyring {
	return newSystemKeyring()
}
