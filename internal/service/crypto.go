package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

// Wire format: "enc:v1:<b64 salt>:<b64 iv>:<b64 ciphertext>". The key is
// derived per value with PBKDF2-SHA256 so ciphertexts carry everything
// needed for decryption except the passphrase itself.
const (
	cipherPrefix = "enc:v1:"

	saltLength       = 16
	nonceLength      = 12
	keyLength        = 32
	pbkdf2Iterations = 120_000
)

var ErrNoPassphrase = errors.New("no passphrase set")

type cryptoService struct {
	mu         sync.RWMutex
	passphrase string
}

// NewCryptoService returns a CryptoService with no passphrase set.
func NewCryptoService() CryptoService {
	return &cryptoService{}
}

func (c *cryptoService) SetPassphrase(passphrase string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passphrase = passphrase
}

func (c *cryptoService) HasPassphrase() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.passphrase != ""
}

func (c *cryptoService) currentPassphrase() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.passphrase == "" {
		return "", ErrNoPassphrase
	}
	return c.passphrase, nil
}

// EncryptText implements [CryptoService].
func (c *cryptoService) EncryptText(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	passphrase, err := c.currentPassphrase()
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltLength)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, nonceLength)
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return "", err
	}

	sealed := aead.Seal(nil, nonce, []byte(plain), nil)
	return cipherPrefix +
		base64.StdEncoding.EncodeToString(salt) + ":" +
		base64.StdEncoding.EncodeToString(nonce) + ":" +
		base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptText implements [CryptoService].
func (c *cryptoService) DecryptText(text string) (string, error) {
	if !strings.HasPrefix(text, cipherPrefix) {
		return text, nil
	}
	passphrase, err := c.currentPassphrase()
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.TrimPrefix(text, cipherPrefix), ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed ciphertext")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return "", err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plain), nil
}

func newAEAD(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return aead, nil
}
