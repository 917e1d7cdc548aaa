package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoService_RoundTrip(t *testing.T) {
	c := NewCryptoService()
	c.SetPassphrase("correct horse battery staple")

	cipherText, err := c.EncryptText("今日はいい天気 #日記")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cipherText, "enc:v1:"))

	plain, err := c.DecryptText(cipherText)
	require.NoError(t, err)
	assert.Equal(t, "今日はいい天気 #日記", plain)
}

func TestCryptoService_EmptyPlaintextStaysEmpty(t *testing.T) {
	c := NewCryptoService()
	c.SetPassphrase("pass")

	out, err := c.EncryptText("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCryptoService_FreshSaltPerValue(t *testing.T) {
	c := NewCryptoService()
	c.SetPassphrase("pass")

	first, err := c.EncryptText("same input")
	require.NoError(t, err)
	second, err := c.EncryptText("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCryptoService_NoPassphrase(t *testing.T) {
	c := NewCryptoService()

	assert.False(t, c.HasPassphrase())

	_, err := c.EncryptText("secret")
	assert.ErrorIs(t, err, ErrNoPassphrase)

	_, err = c.DecryptText("enc:v1:a:b:c")
	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestCryptoService_PassthroughForPlainValues(t *testing.T) {
	c := NewCryptoService()
	c.SetPassphrase("pass")

	// legacy unencrypted values come back untouched
	out, err := c.DecryptText("never encrypted")
	require.NoError(t, err)
	assert.Equal(t, "never encrypted", out)
}

func TestCryptoService_WrongPassphrase(t *testing.T) {
	c := NewCryptoService()
	c.SetPassphrase("first")

	cipherText, err := c.EncryptText("secret")
	require.NoError(t, err)

	c.SetPassphrase("second")
	_, err = c.DecryptText(cipherText)
	assert.Error(t, err)
}

func TestCryptoService_MalformedCiphertext(t *testing.T) {
	c := NewCryptoService()
	c.SetPassphrase("pass")

	_, err := c.DecryptText("enc:v1:only-two-parts")
	assert.Error(t, err)

	_, err = c.DecryptText("enc:v1:!!!:!!!:!!!")
	assert.Error(t, err)
}
