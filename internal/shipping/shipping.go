package shipping

import "strings"

// ShippingInfo is the plaintext shipping form a buyer submits at checkout.
// It only ever exists in memory; the persisted form is the encrypted blob on
// the receipt.
type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// KeyConfig is the deployment's shipping encryption keypair reference. Only
// the public half is configured on the service; the private half is supplied
// by the admin operator per decryption and never stored.
type KeyConfig struct {
	PublicKeyHex string
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

const (
	minNameLength    = 2
	minAddressLength = 10
	minPhoneLength   = 10
)

// Validate checks the minimum-length rules and accumulates every violation so
// the caller can render all of them at once. It never rejects on format.
func Validate(info ShippingInfo) ValidationResult {
	errors := []string{}

	if len(strings.TrimSpace(info.Name)) < minNameLength {
		errors = append(errors, "name must be at least 2 characters")
	}
	if len(strings.TrimSpace(info.Address)) < minAddressLength {
		errors = append(errors, "address must be at least 10 characters")
	}
	if len(strings.TrimSpace(info.Phone)) < minPhoneLength {
		errors = append(errors, "phone must be at least 10 characters")
	}

	return ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}
