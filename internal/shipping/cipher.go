package shipping

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"
)

// EncryptionError is fatal for a checkout attempt: without a valid public key
// there is no way to produce the blob the receipt needs.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	return "shipping encryption failed: " + e.Err.Error()
}

func (e *EncryptionError) Unwrap() error {
	return e.Err
}

// DecryptionError covers a wrong private key, a corrupted blob and tampering.
// It is expected and recoverable; the operator re-enters the key.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return "shipping decryption failed: " + e.Err.Error()
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Encrypt serializes the shipping info to JSON and encrypts it with the
// deployment public key using ECIES over secp256k1. The returned blob is the
// base64 encoding of the library output (ephemeral public key, IV, ciphertext
// and MAC), which is what gets written onto the receipt at mint time.
func Encrypt(info ShippingInfo, publicKeyHex string) (string, error) {
	publicKey, err := parsePublicKey(publicKeyHex)
	if err != nil {
		return "", &EncryptionError{Err: err}
	}

	plaintext, err := json.Marshal(info)
	if err != nil {
		return "", &EncryptionError{Err: err}
	}

	ciphertext, err := ecies.Encrypt(rand.Reader, ecies.ImportECDSAPublic(publicKey), plaintext, nil, nil)
	if err != nil {
		return "", &EncryptionError{Err: err}
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt is the inverse of Encrypt. Any failure along the way surfaces as a
// DecryptionError; the function never returns partial shipping data.
func Decrypt(blob string, privateKeyHex string) (*ShippingInfo, error) {
	privateKey, err := ethcrypto.HexToECDSA(strip0x(privateKeyHex))
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	ciphertext, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	plaintext, err := ecies.ImportECDSA(privateKey).Decrypt(ciphertext, nil, nil)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	var info ShippingInfo
	if err := json.Unmarshal(plaintext, &info); err != nil {
		return nil, &DecryptionError{Err: err}
	}

	return &info, nil
}

func parsePublicKey(publicKeyHex string) (*ecdsa.PublicKey, error) {
	raw, err := hex.DecodeString(strip0x(strings.TrimSpace(publicKeyHex)))
	if err != nil {
		return nil, err
	}

	switch len(raw) {
	case 33:
		return ethcrypto.DecompressPubkey(raw)
	case 65:
		return ethcrypto.UnmarshalPubkey(raw)
	}
	return nil, errors.New("public key must be a 33 or 65 byte secp256k1 point")
}

func strip0x(value string) string {
	return strings.TrimPrefix(value, "0x")
}
