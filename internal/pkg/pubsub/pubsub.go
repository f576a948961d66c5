package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ctx context.Context
var client *pubsub.Client

// Publishable is any message that knows the topic it belongs on.
type Publishable interface {
	GetEventTopicName() string
}

func InitPubSub() {
	projectID := viper.Get("GOOGLE_PROJECT_ID").(string)
	if projectID == "" {
		log.Fatal().Msg("Pub sub missing projectID to initialize")
	}
	ctx = context.Background()
	var err error
	client, err = pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing pub sub connection")
	}
	log.Info().Msg("Successful pubsub init")
}

func Subscribe(subscriptionHandler SubscriptionHandler) {
	sub := client.Subscription(subscriptionHandler.SubscriptionId)
	err := sub.Receive(ctx, subscriptionHandler.Handler)
	if err != nil {
		log.Error().Err(err).Msg(fmt.Sprintf("Subscriber error for sub id %s", subscriptionHandler.SubscriptionId))
	}
}

func Publish(message Publishable) error {
	t := getTopic(message.GetEventTopicName())
	defer t.Stop()

	result := t.Publish(ctx, &pubsub.Message{Data: encodeMessage(message)})

	// The marketplace never retries chain transactions on its own; a failed
	// publish is surfaced to the caller so the UI can offer a manual retry.
	_, err := result.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg(fmt.Sprintf("Failed to publish message for %s", message.GetEventTopicName()))
		return err
	}
	return nil
}

func CloseClient() {
	client.Close()
}

func getTopic(topicName string) *pubsub.Topic {
	t := client.Topic(topicName)
	if t == nil {
		log.Info().Msg(fmt.Sprintf("Topic %s does not exist. Creating new", topicName))
		nt, err := client.CreateTopic(ctx, topicName)
		if err != nil {
			log.Error().Err(err).Msg(fmt.Sprintf("Cant create topic %s", topicName))
		}
		return nt
	}
	return t
}

func encodeMessage(message any) []byte {
	switch m := message.(type) {
	case string:
		return []byte(m)

	default:
		bytes, _ := json.Marshal(message)
		return bytes
	}
}
