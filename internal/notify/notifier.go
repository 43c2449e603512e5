// Package notify forwards reminder requests to the delivery infrastructure.
// Delivery itself (email, push) is owned by downstream consumers; dispatch is
// fire-and-forget and the engine never awaits confirmation.
package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/observability"
)

// ReminderContext identifies the assignment a reminder refers to.
type ReminderContext struct {
	AssignmentID    string `json:"assignment_id"`
	AssignmentTitle string `json:"assignment_title"`
}

// Notifier forwards a reminder to a recipient list.
type Notifier interface {
	Notify(ctx context.Context, recipients []string, reminder ReminderContext) error
}

type reminderEvent struct {
	Source     string          `json:"source"`
	Recipients []string        `json:"recipients"`
	Reminder   ReminderContext `json:"reminder"`
	SentAt     time.Time       `json:"sent_at"`
}

type brokerNotifier struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	nodeID       string
}

// NewBrokerNotifier builds a notifier that publishes reminder events to a
// redis channel and a NATS subject derived from channelBase. Either client
// may be nil; publishing skips absent transports.
func NewBrokerNotifier(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) Notifier {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":reminders"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".reminders"
	}

	return &brokerNotifier{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "reminder_notifier").Logger(),
		nodeID:       uuid.NewString(),
	}
}

func (n *brokerNotifier) Notify(ctx context.Context, recipients []string, reminder ReminderContext) error {
	event := reminderEvent{
		Source:     n.nodeID,
		Recipients: recipients,
		Reminder:   reminder,
		SentAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if n.redis != nil && n.redisChannel != "" {
		if err := n.redis.Publish(ctx, n.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if n.nats != nil && n.natsSubject != "" {
		if err := n.nats.Publish(n.natsSubject, payload); err != nil {
			return err
		}
	}

	observability.RemindersDispatchedTotal().Add(float64(len(recipients)))
	n.logger.Info().
		Str("assignment_id", reminder.AssignmentID).
		Int("recipients", len(recipients)).
		Msg("reminder dispatched")

	return nil
}

type nopNotifier struct {
	logger zerolog.Logger
}

// NewNopNotifier builds a notifier that only logs, for development runs
// without a broker.
func NewNopNotifier(logger zerolog.Logger) Notifier {
	return &nopNotifier{logger: logger.With().Str("component", "reminder_notifier").Logger()}
}

func (n *nopNotifier) Notify(_ context.Context, recipients []string, reminder ReminderContext) error {
	n.logger.Info().
		Str("assignment_id", reminder.AssignmentID).
		Strs("recipients", recipients).
		Msg("reminder dispatch skipped: no broker configured")
	return nil
}
