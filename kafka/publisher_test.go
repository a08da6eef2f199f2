package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicCatalogProducts {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "product_7" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer, []string{"localhost:9092"})
	defer publisher.Close()

	err := publisher.Publish(context.Background(), ProductEvent{
		EventType:  EventTypeProductCreated,
		ProductID:  7,
		Name:       "Caderno",
		CategoryID: 1,
	})
	require.NoError(t, err)
}

func TestPublisher_FillsEventMetadata(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	var published ProductEvent
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		return json.Unmarshal(value, &published)
	})

	publisher := NewPublisherWithProducer(producer, nil)
	require.NoError(t, publisher.Publish(context.Background(), ProductEvent{EventType: EventTypeProductDeleted, ProductID: 3}))

	assert.NotEmpty(t, published.EventID)
	assert.False(t, published.Timestamp.IsZero())
	assert.Equal(t, EventTypeProductDeleted, published.EventType)
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer, nil)
	err := publisher.Publish(context.Background(), ProductEvent{EventType: EventTypeProductUpdated, ProductID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), ProductEvent{}))
	assert.NoError(t, p.Close())
}
