// Package notifier consumes user events from Kafka and mails the affected
// user about the change to their account.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"userdesk/internal/server/models"
)

// Message is one outgoing mail.
type Message struct {
	To      string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type template struct {
	subject string
	text    string
}

var templates = map[models.UserEventType]template{
	models.UserEventCreate: {
		subject: "Account created",
		text:    "Hello! Your userdesk account has been created.",
	},
	models.UserEventDelete: {
		subject: "Account deleted",
		text:    "Hello! Your userdesk account has been deleted.",
	},
}

// MessageFor renders the mail for ev. Unknown event types yield false.
func MessageFor(ev models.UserEvent) (Message, bool) {
	tpl, ok := templates[ev.Type]
	if !ok || ev.Email == "" {
		return Message{}, false
	}
	return Message{To: ev.Email, Subject: tpl.subject, Text: tpl.text}, true
}

// Consumer implements sarama.ConsumerGroupHandler.
type Consumer struct {
	mailer Mailer
	logger *slog.Logger
}

func NewConsumer(mailer Mailer, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{mailer: mailer, logger: logger}
}

// Handle decodes one event and mails its recipient.
func (c *Consumer) Handle(ctx context.Context, value []byte) error {
	var ev models.UserEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return fmt.Errorf("decode user event: %w", err)
	}
	c.logger.Info("user event received", "event_id", ev.ID, "type", ev.Type)
	msg, ok := MessageFor(ev)
	if !ok {
		c.logger.Warn("user event ignored", "event_id", ev.ID, "type", ev.Type)
		return nil
	}
	if err := c.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s mail: %w", ev.Type, err)
	}
	c.logger.Info("notification sent", "type", ev.Type, "to", msg.To)
	return nil
}

func (c *Consumer) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (c *Consumer) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks every message. Failures are logged, not retried.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := c.Handle(session.Context(), msg.Value); err != nil {
			c.logger.Error("handling user event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

// NewKafkaConfig returns the consumer group configuration used by DialGroup.
func NewKafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	return cfg
}

func DialGroup(brokers []string, groupID string) (sarama.ConsumerGroup, error) {
	group, err := sarama.NewConsumerGroup(brokers, groupID, NewKafkaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}
	return group, nil
}

// Run consumes topic until ctx is done. Consume returns at every rebalance,
// so it is called in a loop.
func Run(ctx context.Context, group sarama.ConsumerGroup, topic string, c *Consumer) error {
	for {
		if err := group.Consume(ctx, []string{topic}, c); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("consume %s: %w", topic, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
