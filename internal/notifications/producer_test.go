package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"padang/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaEventPublisher_Publish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	defer producer.Close()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event BookingEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.Type != EventPaymentConfirmed || event.Venue != "Padang A" || event.Slot != "C3" {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	pub := NewKafkaEventPublisherWithProducer(producer, "booking-events", logger.Discard())
	event := NewBookingEvent(EventPaymentConfirmed, "sess-1", "Padang A", "C3")

	require.NoError(t, pub.Publish(context.Background(), event))
}

func TestKafkaEventPublisher_PublishFailure(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	defer producer.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaEventPublisherWithProducer(producer, "booking-events", logger.Discard())
	err := pub.Publish(context.Background(), NewBookingEvent(EventTeamRegistered, "s", "Padang B", "A1"))

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestBookingEventPartitionKey(t *testing.T) {
	event := NewBookingEvent(EventSlotSelected, "s", "Padang C", "D4")
	assert.Equal(t, "Padang C:D4", event.GetPartitionKey())
}

func TestNewSaramaConfig(t *testing.T) {
	cfg := NewSaramaConfig(DefaultKafkaProducerConfig())

	assert.True(t, cfg.Producer.Return.Successes)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, *BookingEvent) error {
	f.calls++
	return errors.New("broker down")
}
func (f *failingPublisher) Close() error { return nil }

func TestPublishBestEffortSwallowsErrors(t *testing.T) {
	pub := &failingPublisher{}
	assert.NotPanics(t, func() {
		PublishBestEffort(context.Background(), pub, logger.Discard(), NewBookingEvent(EventTeamRegistered, "s", "Padang A", "A1"))
		PublishBestEffort(context.Background(), nil, logger.Discard(), NewBookingEvent(EventTeamRegistered, "s", "Padang A", "A1"))
	})
	assert.Equal(t, 1, pub.calls)
}
