package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingRequestValidateAcceptsCompleteRequest(t *testing.T) {
	request := TrackingRequest{
		Carrier:           "LBC",
		TrackingNumber:    "LBC123456789",
		EstimatedDelivery: 1767225600,
	}

	assert.Empty(t, request.validate())
}

func TestTrackingRequestValidateAccumulatesViolations(t *testing.T) {
	request := TrackingRequest{
		Carrier:           "   ",
		TrackingNumber:    "",
		EstimatedDelivery: 0,
	}

	violations := request.validate()
	assert.Len(t, violations, 3)
}

func TestTrackingRequestValidateRejectsNegativeDelivery(t *testing.T) {
	request := TrackingRequest{
		Carrier:           "JNT",
		TrackingNumber:    "JNT42",
		EstimatedDelivery: -1,
	}

	violations := request.validate()
	assert.Len(t, violations, 1)
	assert.Contains(t, violations[0], "estimated delivery")
}
