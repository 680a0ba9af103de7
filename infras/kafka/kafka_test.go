package kafka_test

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key: "booking-1",
		Value: map[string]any{
			"type":   "booking.created",
			"roomId": "room-1",
		},
	}

	got, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("booking-1"), got.Key)
	assert.JSONEq(t, `{"type":"booking.created","roomId":"room-1"}`, string(got.Value))
}

func TestMessage_ToKafkaMessageUnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_DisabledDropsMessages(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())
}
