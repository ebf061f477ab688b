package queue

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	msg, err := newPublishing(map[string]interface{}{"post_id": 7}, now)

	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"post_id":7}`, string(msg.Body))
}

func TestNewPublishing_Unencodable(t *testing.T) {
	_, err := newPublishing(make(chan int), time.Now())
	assert.Error(t, err)
}
