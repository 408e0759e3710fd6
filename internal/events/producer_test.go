package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	t.Parallel()

	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestNop_PublishEvent(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicUserEvents, "k", New(UserSignedIn, nil)))
}

func TestEvent_JSON(t *testing.T) {
	t.Parallel()

	ev := New(ComicCreated, ComicEvent{ComicID: "c1", Slug: "one-piece"})
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "comic_created", got["type"])
	data, ok := got["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "one-piece", data["slug"])
	assert.NotContains(t, data, "user_id")
}

// Runs against a real broker only when KAFKA_TEST_BROKER is set.
func TestProducer_PublishEvent_Integration(t *testing.T) {
	broker := os.Getenv("KAFKA_TEST_BROKER")
	if broker == "" {
		t.Skip("KAFKA_TEST_BROKER not set")
	}

	require.NoError(t, EnsureTopics(broker, TopicUserEvents))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", broker, TopicUserEvents, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     TopicUserEvents,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	p, err := NewProducer([]string{broker})
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.PublishEvent(ctx, TopicUserEvents, "u1", New(UserSignedIn, UserEvent{UserID: "u1", Username: "alice1"})))

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", string(m.Key))

	var got Event
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, UserSignedIn, got.Type)
}
