package shipping

// Decryptor hides the key-handling strategy from call sites. The admin
// dashboard ships with the pasted-key implementation below; an HSM or
// vault-backed one can be swapped in without touching the order flow.
type Decryptor interface {
	Decrypt(blob string) (*ShippingInfo, error)
}

// LocalKeyDecryptor decrypts with an operator-supplied private key held in
// memory for the duration of the request only.
type LocalKeyDecryptor struct {
	PrivateKeyHex string
}

func (d LocalKeyDecryptor) Decrypt(blob string) (*ShippingInfo, error) {
	return Decrypt(blob, d.PrivateKeyHex)
}
