package service

// CryptoService is the opaque transform applied to item name/content before
// upload and after fetch. The passphrase is held for the session only; it is
// never persisted and never sent to the server.
type CryptoService interface {
	// SetPassphrase replaces the session passphrase. Callers owning cached
	// plaintext must invalidate it when the passphrase changes.
	SetPassphrase(passphrase string)

	// HasPassphrase reports whether a passphrase is currently set. Without
	// one, remote writes cannot be built and flushes are no-ops.
	HasPassphrase() bool

	// EncryptText encrypts plain into the versioned wire format. An empty
	// string stays empty.
	EncryptText(plain string) (string, error)

	// DecryptText reverses EncryptText. Strings without the wire-format
	// prefix are returned unchanged (legacy plaintext passthrough).
	// Returns an error when the passphrase is wrong or the ciphertext is
	// corrupted.
	DecryptText(cipher string) (string, error)
}
