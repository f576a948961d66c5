package mint

import (
	"context"
	"fmt"
	"strings"

	gcppubsub "cloud.google.com/go/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/blockchain"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/ws"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// ReceiptMinted is the chain worker event emitted once the mint transaction
// seals. It carries everything needed to build the receipt read model row.
type ReceiptMinted struct {
	ReceiptId             string  `json:"receiptId"`
	NftId                 string  `json:"nftId"`
	Buyer                 string  `json:"buyer"`
	Name                  string  `json:"name"`
	Country               string  `json:"country"`
	Lore                  string  `json:"lore"`
	ImageCid              string  `json:"imageCid"`
	Attributes            string  `json:"attributes"`
	Items                 string  `json:"items"`
	EncryptedShippingInfo string  `json:"encryptedShippingInfo"`
	PaymentAmount         float64 `json:"paymentAmount"`
	MintedAt              int64   `json:"mintedAt"`
}

type receiptContractBridge struct {
	db              *gorm.DB
	notificationHub *ws.WebSocketNotificationHub
	publish         func(pubsub.Publishable) error
}

func (b *receiptContractBridge) mint(request MintRequest, encryptedShippingInfo, publicKeyRef string, paymentAmount float64) error {
	commandType := "CHARACTER_MINT"
	payload := []any{
		request.BuyerAddress,
		request.Name,
		request.Country,
		request.Lore,
		request.ImageCid,
		request.Attributes,
		strings.Join(request.Items, ","),
		encryptedShippingInfo,
		publicKeyRef,
		paymentAmount,
		viper.Get("TREASURY_ADDRESS").(string),
	}
	authorizers := []blockchain.Authorizer{blockchain.GetAdminAuthorizer()}

	cmd := blockchain.NewBlockchainCommand(commandType, payload, authorizers)
	return b.publish(cmd)
}

func (b *receiptContractBridge) handleReceiptMinted(_ context.Context, message *gcppubsub.Message) {
	log.Info().Msg("Received message payload " + string(message.Data))
	event, err := utils.JsonDecodeByteStream[ReceiptMinted](message.Data)
	if err != nil {
		log.Warn().Err(err).Msg("Error while parsing ReceiptMinted message")
		return
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		receipt := model.Receipt{
			ReceiptId:             event.ReceiptId,
			NftId:                 event.NftId,
			BuyerAddress:          event.Buyer,
			ItemsSelected:         event.Items,
			EncryptedShippingInfo: event.EncryptedShippingInfo,
			Status:                model.OrderPending,
			PaymentAmount:         event.PaymentAmount,
			CreatedAt:             event.MintedAt,
		}
		if result := tx.Create(&receipt); result.Error != nil {
			return result.Error
		}

		character := model.Character{
			NftId:        event.NftId,
			OwnerAddress: event.Buyer,
			Name:         event.Name,
			Country:      event.Country,
			Lore:         event.Lore,
			ImageCid:     event.ImageCid,
			Attributes:   event.Attributes,
			MintedAt:     event.MintedAt,
		}
		if result := tx.Create(&character); result.Error != nil {
			return result.Error
		}

		mintEvent := model.MintEvent{
			NftId:        event.NftId,
			BuyerAddress: event.Buyer,
			MintedAt:     event.MintedAt,
		}
		result := tx.Create(&mintEvent)
		return result.Error
	})

	if err != nil {
		log.Warn().Err(err).Msg("Error while handling ReceiptMinted")
		return
	}

	message.Ack()

	b.notificationHub.Publish(fmt.Sprintf("orders/%s", event.Buyer), map[string]any{
		"type":    "RECEIPT_MINTED",
		"payload": event,
	})
}
