package shipping

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeypair(t *testing.T) (publicKeyHex, privateKeyHex string) {
	t.Helper()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	return hex.EncodeToString(ethcrypto.FromECDSAPub(&key.PublicKey)),
		hex.EncodeToString(ethcrypto.FromECDSA(key))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	publicKey, privateKey := newKeypair(t)
	info := ShippingInfo{
		Name:    "Juan Dela Cruz",
		Address: "123 Mabini St, Cebu City",
		Phone:   "09171234567",
	}

	blob, err := Encrypt(info, publicKey)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	plaintext, _ := json.Marshal(info)
	assert.NotEqual(t, string(plaintext), blob)

	decrypted, err := Decrypt(blob, privateKey)
	require.NoError(t, err)
	assert.Equal(t, info, *decrypted)
}

func TestEncryptAcceptsCompressedAndPrefixedKeys(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	privateKey := hex.EncodeToString(ethcrypto.FromECDSA(key))
	compressed := hex.EncodeToString(ethcrypto.CompressPubkey(&key.PublicKey))

	info := ShippingInfo{Name: "Juan", Address: "123 Mabini St, Cebu City", Phone: "09171234567"}

	for _, publicKey := range []string{compressed, "0x" + compressed} {
		blob, err := Encrypt(info, publicKey)
		require.NoError(t, err)

		decrypted, err := Decrypt(blob, "0x"+privateKey)
		require.NoError(t, err)
		assert.Equal(t, info, *decrypted)
	}
}

func TestEncryptRejectsBadPublicKey(t *testing.T) {
	info := ShippingInfo{Name: "Juan", Address: "123 Mabini St, Cebu City", Phone: "09171234567"}

	for _, publicKey := range []string{"", "zzzz", "abcd12"} {
		_, err := Encrypt(info, publicKey)
		require.Error(t, err)

		var encErr *EncryptionError
		assert.True(t, errors.As(err, &encErr))
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	publicKey, _ := newKeypair(t)
	_, wrongKey := newKeypair(t)

	blob, err := Encrypt(ShippingInfo{Name: "Juan", Address: "123 Mabini St, Cebu City", Phone: "09171234567"}, publicKey)
	require.NoError(t, err)

	decrypted, err := Decrypt(blob, wrongKey)
	require.Error(t, err)
	assert.Nil(t, decrypted)

	var decErr *DecryptionError
	assert.True(t, errors.As(err, &decErr))
}

func TestDecryptRejectsCorruptBlob(t *testing.T) {
	_, privateKey := newKeypair(t)

	for _, blob := range []string{"", "not base64 !!!", "YWJjZGVmZ2hpamtsbW5vcA=="} {
		decrypted, err := Decrypt(blob, privateKey)
		require.Error(t, err)
		assert.Nil(t, decrypted)

		var decErr *DecryptionError
		assert.True(t, errors.As(err, &decErr))
	}
}

func TestEncryptionIsNotDeterministic(t *testing.T) {
	publicKey, _ := newKeypair(t)
	info := ShippingInfo{Name: "Juan", Address: "123 Mabini St, Cebu City", Phone: "09171234567"}

	first, err := Encrypt(info, publicKey)
	require.NoError(t, err)
	second, err := Encrypt(info, publicKey)
	require.NoError(t, err)

	// ephemeral keys mean two encryptions of the same plaintext differ
	assert.NotEqual(t, first, second)
}

func TestLocalKeyDecryptor(t *testing.T) {
	publicKey, privateKey := newKeypair(t)
	info := ShippingInfo{Name: "Juan Dela Cruz", Address: "123 Mabini St, Cebu City", Phone: "09171234567"}

	blob, err := Encrypt(info, publicKey)
	require.NoError(t, err)

	var decryptor Decryptor = LocalKeyDecryptor{PrivateKeyHex: privateKey}
	decrypted, err := decryptor.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, info, *decrypted)
}
