package order

import (
	"testing"

	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/blockchain"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkShippedPublishesCommand(t *testing.T) {
	viper.Set("ADMIN_GCP_KMS_RESOURCE_NAME", "projects/p/locations/l/keyRings/r/cryptoKeys/k/cryptoKeyVersions/1")
	viper.Set("ADMIN_AUTHORIZER_ADDR", "0xadmin")

	var published blockchain.Command
	bridge := &receiptContractBridge{
		publish: func(message pubsub.Publishable) error {
			published = message.(blockchain.Command)
			return nil
		},
	}

	err := bridge.markShipped("receipt-42")
	require.NoError(t, err)

	assert.NotEmpty(t, published.Id)
	assert.Equal(t, "RECEIPT_MARK_SHIPPED", published.Type)
	assert.Equal(t, "blockchain.flow.commands", published.GetEventTopicName())
	require.Len(t, published.Payload, 1)
	assert.Equal(t, "receipt-42", published.Payload[0])

	require.Len(t, published.Authorizers, 1)
	assert.Equal(t, "0xadmin", published.Authorizers[0].ResourceOwnerAddress)
}

func TestSetTrackingPublishesCommand(t *testing.T) {
	viper.Set("ADMIN_GCP_KMS_RESOURCE_NAME", "resource")
	viper.Set("ADMIN_AUTHORIZER_ADDR", "0xadmin")

	var published blockchain.Command
	bridge := &receiptContractBridge{
		publish: func(message pubsub.Publishable) error {
			published = message.(blockchain.Command)
			return nil
		},
	}

	err := bridge.setTracking("receipt-42", TrackingRequest{
		Carrier:           "LBC",
		TrackingNumber:    "LBC123456789",
		EstimatedDelivery: 1767225600,
	})
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT_SET_TRACKING", published.Type)
	require.Len(t, published.Payload, 4)
	assert.Equal(t, "receipt-42", published.Payload[0])
	assert.Equal(t, "LBC123456789", published.Payload[1])
	assert.Equal(t, "LBC", published.Payload[2])
	assert.Equal(t, int64(1767225600), published.Payload[3])
}

func TestBridgeSurfacesPublishFailure(t *testing.T) {
	viper.Set("ADMIN_GCP_KMS_RESOURCE_NAME", "resource")
	viper.Set("ADMIN_AUTHORIZER_ADDR", "0xadmin")

	bridge := &receiptContractBridge{
		publish: func(pubsub.Publishable) error {
			return assert.AnError
		},
	}

	assert.ErrorIs(t, bridge.markShipped("receipt-42"), assert.AnError)
	assert.ErrorIs(t, bridge.setTracking("receipt-42", TrackingRequest{}), assert.AnError)
}
