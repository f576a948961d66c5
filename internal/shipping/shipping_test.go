package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccepts(t *testing.T) {
	result := Validate(ShippingInfo{
		Name:    "Juan Dela Cruz",
		Address: "123 Mabini St, Cebu City",
		Phone:   "09171234567",
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.NotNil(t, result.Errors)
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	cases := []struct {
		name       string
		info       ShippingInfo
		violations int
	}{
		{"short name", ShippingInfo{Name: "J", Address: "123 Mabini St, Cebu City", Phone: "09171234567"}, 1},
		{"short address", ShippingInfo{Name: "Juan", Address: "Cebu", Phone: "09171234567"}, 1},
		{"short phone", ShippingInfo{Name: "Juan", Address: "123 Mabini St, Cebu City", Phone: "0917"}, 1},
		{"name and phone", ShippingInfo{Name: "", Address: "123 Mabini St, Cebu City", Phone: ""}, 2},
		{"everything", ShippingInfo{}, 3},
		{"whitespace only", ShippingInfo{Name: "  ", Address: "          ", Phone: "\t\t"}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.info)
			assert.False(t, result.Valid)
			assert.Len(t, result.Errors, tc.violations)
		})
	}
}

func TestValidateBoundaryLengths(t *testing.T) {
	result := Validate(ShippingInfo{
		Name:    "Jo",
		Address: "1234567890",
		Phone:   "0123456789",
	})

	assert.True(t, result.Valid)
}
