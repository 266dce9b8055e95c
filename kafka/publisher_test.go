package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() OrderCompletedEvent {
	return OrderCompletedEvent{
		OrderID: "order-1",
		Lines: []OrderLine{{
			ProductID: 7,
			Name:      "Cable-Knit Sweater",
			Size:      "M",
			Color:     "Navy",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("198.50"),
			LineTotal: decimal.RequireFromString("397.00"),
		}},
		ItemCount: 2,
		Total:     decimal.RequireFromString("397.00"),
		Currency:  "USD",
	}
}

func TestPublisher_PublishOrderCompleted(t *testing.T) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got OrderCompletedEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.EventType != EventTypeOrderCompleted {
			return errors.New("unexpected event type " + got.EventType)
		}
		if got.EventID == "" || got.Timestamp.IsZero() {
			return errors.New("event id and timestamp must be set")
		}
		if !got.Total.Equal(decimal.RequireFromString("397")) {
			return errors.New("unexpected total " + got.Total.String())
		}
		return nil
	})

	p := NewPublisherWithProducer(producer, "")
	require.NoError(t, p.PublishOrderCompleted(context.Background(), sampleEvent()))
	assert.Equal(t, TopicOrderCompleted, p.topic)
	require.NoError(t, p.Close())
}

func TestPublisher_PublishOrderCompletedFailure(t *testing.T) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer, "orders")
	err := p.PublishOrderCompleted(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
