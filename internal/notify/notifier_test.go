package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBrokerNotifierPublishesToRedisChannel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	pubsub := client.Subscribe(ctx, "mentora:reminders")
	defer pubsub.Close()
	_, err = pubsub.Receive(ctx)
	require.NoError(t, err)

	notifier := NewBrokerNotifier(client, nil, "mentora", zerolog.Nop())
	err = notifier.Notify(ctx, []string{"Alice Johnson", "Bob Smith"}, ReminderContext{
		AssignmentID:    "a1",
		AssignmentTitle: "Wireframing Exercise",
	})
	require.NoError(t, err)

	select {
	case msg := <-pubsub.Channel():
		var event struct {
			Recipients []string        `json:"recipients"`
			Reminder   ReminderContext `json:"reminder"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		require.Equal(t, []string{"Alice Johnson", "Bob Smith"}, event.Recipients)
		require.Equal(t, "a1", event.Reminder.AssignmentID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reminder event on the redis channel")
	}
}

func TestNopNotifierNeverFails(t *testing.T) {
	notifier := NewNopNotifier(zerolog.Nop())
	err := notifier.Notify(context.Background(), []string{"Alice Johnson"}, ReminderContext{AssignmentID: "a1"})
	require.NoError(t, err)
}
