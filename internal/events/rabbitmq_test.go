package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestRabbitPublisherRoutesByType(t *testing.T) {
	ch := new(MockChannel)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := LeadEvent{Type: LeadStatusChanged, LeadID: "L1", From: "propuesta", To: "cerrada", At: at}

	ch.On("PublishWithContext", mock.Anything, "ex.crm.leads", LeadStatusChanged, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var got LeadEvent
			if err := json.Unmarshal(msg.Body, &got); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				got.LeadID == "L1" && got.To == "cerrada"
		}),
	).Return(nil)

	p := NewRabbitPublisher(ch, "ex.crm.leads")
	require.NoError(t, p.Publish(context.Background(), ev))
	ch.AssertExpectations(t)
}

func TestRabbitPublisherWrapsErrors(t *testing.T) {
	ch := new(MockChannel)
	boom := errors.New("channel closed")
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(boom)

	p := NewRabbitPublisher(ch, "ex.crm.leads")
	err := p.Publish(context.Background(), LeadEvent{Type: LeadDeleted, LeadID: "L2"})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), LeadEvent{}))
}
