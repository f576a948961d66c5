package order

import (
	"context"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/blockchain"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/ws"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ReceiptShipped struct {
	ReceiptId string `json:"receiptId"`
	Buyer     string `json:"buyer"`
}

type ReceiptTrackingUpdated struct {
	ReceiptId         string `json:"receiptId"`
	Buyer             string `json:"buyer"`
	Carrier           string `json:"carrier"`
	TrackingNumber    string `json:"trackingNumber"`
	EstimatedDelivery int64  `json:"estimatedDelivery"`
}

type ReceiptDelivered struct {
	ReceiptId string `json:"receiptId"`
	Buyer     string `json:"buyer"`
}

type receiptContractBridge struct {
	db              *gorm.DB
	notificationHub *ws.WebSocketNotificationHub
	publish         func(pubsub.Publishable) error
}

func (b *receiptContractBridge) markShipped(receiptId string) error {
	commandType := "RECEIPT_MARK_SHIPPED"
	payload := []any{
		receiptId,
	}
	authorizers := []blockchain.Authorizer{blockchain.GetAdminAuthorizer()}

	cmd := blockchain.NewBlockchainCommand(commandType, payload, authorizers)
	return b.publish(cmd)
}

func (b *receiptContractBridge) setTracking(receiptId string, tracking TrackingRequest) error {
	commandType := "RECEIPT_SET_TRACKING"
	payload := []any{
		receiptId,
		tracking.TrackingNumber,
		tracking.Carrier,
		tracking.EstimatedDelivery,
	}
	authorizers := []blockchain.Authorizer{blockchain.GetAdminAuthorizer()}

	cmd := blockchain.NewBlockchainCommand(commandType, payload, authorizers)
	return b.publish(cmd)
}

func (b *receiptContractBridge) handleReceiptShipped(_ context.Context, message *gcppubsub.Message) {
	log.Info().Msg("Received message payload " + string(message.Data))
	event, err := utils.JsonDecodeByteStream[ReceiptShipped](message.Data)
	if err != nil {
		log.Warn().Err(err).Msg("Error while parsing ReceiptShipped message")
		return
	}

	if !b.applyStatus(event.ReceiptId, model.OrderShipped) {
		return
	}

	message.Ack()
	b.notify(event.Buyer, "RECEIPT_SHIPPED", event)
}

func (b *receiptContractBridge) handleTrackingUpdated(_ context.Context, message *gcppubsub.Message) {
	log.Info().Msg("Received message payload " + string(message.Data))
	event, err := utils.JsonDecodeByteStream[ReceiptTrackingUpdated](message.Data)
	if err != nil {
		log.Warn().Err(err).Msg("Error while parsing ReceiptTrackingUpdated message")
		return
	}

	result := b.db.
		Model(&model.Receipt{}).
		Where("receipt_id = ?", event.ReceiptId).
		Updates(map[string]any{
			"carrier":            event.Carrier,
			"tracking_number":    event.TrackingNumber,
			"estimated_delivery": event.EstimatedDelivery,
		})

	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("Error while handling ReceiptTrackingUpdated")
		return
	}

	message.Ack()
	b.notify(event.Buyer, "RECEIPT_TRACKING_UPDATED", event)
}

func (b *receiptContractBridge) handleReceiptDelivered(_ context.Context, message *gcppubsub.Message) {
	log.Info().Msg("Received message payload " + string(message.Data))
	event, err := utils.JsonDecodeByteStream[ReceiptDelivered](message.Data)
	if err != nil {
		log.Warn().Err(err).Msg("Error while parsing ReceiptDelivered message")
		return
	}

	if !b.applyStatus(event.ReceiptId, model.OrderDelivered) {
		return
	}

	message.Ack()
	b.notify(event.Buyer, "RECEIPT_DELIVERED", event)
}

// applyStatus moves the read-model row forward, but only along the allowed
// transition table. A replayed or out-of-order event is logged and dropped.
func (b *receiptContractBridge) applyStatus(receiptId string, next model.OrderStatus) bool {
	var receipt model.Receipt
	result := b.db.
		Model(&model.Receipt{}).
		Where("receipt_id = ?", receiptId).
		First(&receipt)

	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("Cannot load receipt " + receiptId)
		return false
	}

	if !receipt.Status.CanTransitionTo(next) {
		log.Warn().Msg(fmt.Sprintf("Dropping invalid receipt transition %s -> %s for %s",
			receipt.Status, next, receiptId))
		return false
	}

	result = b.db.
		Model(&model.Receipt{}).
		Where("receipt_id = ?", receiptId).
		Update("status", next)

	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("Error while updating receipt status")
		return false
	}

	return true
}

func (b *receiptContractBridge) notify(buyer, eventType string, payload any) {
	b.notificationHub.Publish(fmt.Sprintf("orders/%s", buyer), map[string]any{
		"type":    eventType,
		"payload": payload,
	})
}
