package kafka

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
)

func TestPublishBookingEvent(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event models.BookingEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.Type != models.EventBookingCreated || event.OrderID != "order_1" {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := NewProducerFromSync(sp, logger.New(&bytes.Buffer{}, false))
	defer p.Close()

	err := p.PublishBookingEvent(&models.BookingEvent{
		ID:        "evt-1",
		Type:      models.EventBookingCreated,
		OrderID:   "order_1",
		Booking:   &models.Booking{OrderID: "order_1", PersonCount: 2},
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
}

func TestPublishBookingEventFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFromSync(sp, logger.New(&bytes.Buffer{}, false))
	defer p.Close()

	err := p.PublishBookingEvent(&models.BookingEvent{Type: models.EventOrderCreated, OrderID: "order_2"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestMockModeDoesNotConnect(t *testing.T) {
	p, err := NewProducer(nil, true, logger.New(&bytes.Buffer{}, false))
	require.NoError(t, err)

	assert.NoError(t, p.PublishBookingEvent(&models.BookingEvent{Type: models.EventOrderCreated, OrderID: "order_3"}))
	assert.NoError(t, p.Close())
}

func TestTopicForEvent(t *testing.T) {
	assert.Equal(t, TopicOrders, TopicForEvent(models.EventOrderCreated))
	assert.Equal(t, TopicBookings, TopicForEvent(models.EventBookingCreated))
	assert.Equal(t, TopicDefault, TopicForEvent("something.else"))
}
