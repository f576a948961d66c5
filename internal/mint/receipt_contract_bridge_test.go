package mint

import (
	"testing"

	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/blockchain"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintPublishesCharacterMintCommand(t *testing.T) {
	viper.Set("TREASURY_ADDRESS", "0xtreasury")
	viper.Set("ADMIN_GCP_KMS_RESOURCE_NAME", "projects/p/locations/l/keyRings/r/cryptoKeys/k/cryptoKeyVersions/1")
	viper.Set("ADMIN_AUTHORIZER_ADDR", "0xadmin")

	var published blockchain.Command
	bridge := &receiptContractBridge{
		publish: func(message pubsub.Publishable) error {
			published = message.(blockchain.Command)
			return nil
		},
	}

	request := MintRequest{
		BuyerAddress: "0xbuyer",
		Name:         "Lapu-Lapu",
		Country:      "Mactan",
		Lore:         "A chieftain of legend.",
		ImageCid:     "QmPortrait",
		Attributes:   map[string]string{"strength": "10"},
		Items:        []string{"shirt", "mug"},
		ShippingInfo: shipping.ShippingInfo{},
	}

	err := bridge.mint(request, "ZW5jcnlwdGVk", "04abcd", 5.0)
	require.NoError(t, err)

	assert.NotEmpty(t, published.Id)
	assert.Equal(t, "CHARACTER_MINT", published.Type)
	assert.Equal(t, "blockchain.flow.commands", published.GetEventTopicName())

	require.Len(t, published.Payload, 11)
	assert.Equal(t, "0xbuyer", published.Payload[0])
	assert.Equal(t, "Lapu-Lapu", published.Payload[1])
	assert.Equal(t, "shirt,mug", published.Payload[6])
	assert.Equal(t, "ZW5jcnlwdGVk", published.Payload[7])
	assert.Equal(t, "04abcd", published.Payload[8])
	assert.Equal(t, 5.0, published.Payload[9])
	assert.Equal(t, "0xtreasury", published.Payload[10])

	require.Len(t, published.Authorizers, 1)
	assert.Equal(t, "0xadmin", published.Authorizers[0].ResourceOwnerAddress)
}

func TestMintSurfacesPublishFailure(t *testing.T) {
	viper.Set("TREASURY_ADDRESS", "0xtreasury")
	viper.Set("ADMIN_GCP_KMS_RESOURCE_NAME", "resource")
	viper.Set("ADMIN_AUTHORIZER_ADDR", "0xadmin")

	bridge := &receiptContractBridge{
		publish: func(pubsub.Publishable) error {
			return assert.AnError
		},
	}

	err := bridge.mint(MintRequest{BuyerAddress: "0xbuyer"}, "blob", "04abcd", 5.0)
	assert.ErrorIs(t, err, assert.AnError)
}
