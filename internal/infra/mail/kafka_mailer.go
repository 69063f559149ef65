package mail

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"archive/config"
	"archive/internal/domain/service"
	"archive/internal/errors"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const kafkaWriteTimeout = 10 * time.Second

// kafkaMailer publishes mail events to a Kafka topic for a downstream mail
// consumer to deliver. The account service never blocks on actual SMTP work
// in this mode.
type kafkaMailer struct {
	writer  *kafka.Writer
	baseURL string
}

// NewKafkaMailer is the constructor for kafkaMailer.
func NewKafkaMailer(cfg *config.KafkaConfig, baseURL string) service.Mailer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: kafkaWriteTimeout,
	}

	if cfg.Username != "" {
		writer.Transport = &kafka.Transport{
			SASL: plain.Mechanism{
				Username: cfg.Username,
				Password: cfg.Password,
			},
			TLS: &tls.Config{},
		}
	}

	return &kafkaMailer{
		writer:  writer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SendVerification publishes a verification mail event.
func (m *kafkaMailer) SendVerification(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/verify?email=%s&code=%s",
		m.baseURL, url.QueryEscape(email), url.QueryEscape(token))

	return m.publish(ctx, Event{
		Kind:  EventKindVerification,
		Email: email,
		Token: token,
		Link:  link,
	})
}

// SendPasswordReset publishes a password reset mail event.
func (m *kafkaMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		m.baseURL, url.QueryEscape(email), url.QueryEscape(token))

	return m.publish(ctx, Event{
		Kind:  EventKindPasswordReset,
		Email: email,
		Token: token,
		Link:  link,
	})
}

func (m *kafkaMailer) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal mail event")
	}

	if err := m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Email),
		Value: payload,
		Time:  time.Now(),
	}); err != nil {
		return errors.Wrap(err, "failed to publish mail event")
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (m *kafkaMailer) Close() error {
	return m.writer.Close()
}
