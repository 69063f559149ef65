package mail

import (
	"context"
	"log/slog"

	"archive/config"
	"archive/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopMailer is a no-op implementation when outbound mail is disabled.
type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) SendVerification(ctx context.Context, email, _ string) error {
	m.logger.DebugContext(ctx, "[NoopMailer] Mail delivery disabled, skipping verification mail",
		slog.String("email", email),
	)

	return nil
}

func (m *noopMailer) SendPasswordReset(ctx context.Context, email, _ string) error {
	m.logger.DebugContext(ctx, "[NoopMailer] Mail delivery disabled, skipping reset mail",
		slog.String("email", email),
	)

	return nil
}

// Params holds dependencies for the Mailer, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewMailer creates a Mailer based on configuration
func NewMailer(params Params) (service.Mailer, error) {
	cfg := params.Config.Mail
	logger := params.Logger

	// If mail is not configured, return a no-op mailer
	if cfg == nil || cfg.Provider == "" || cfg.Provider == "none" {
		logger.Info("Mail not configured, using no-op mailer")

		return &noopMailer{logger: logger}, nil
	}

	switch cfg.Provider {
	case "smtp":
		if cfg.SMTP == nil || cfg.SMTP.Host == "" {
			return nil, errors.New("smtp host is required for smtp provider")
		}
		logger.Info("Using SMTP mailer",
			slog.String("host", cfg.SMTP.Host),
		)

		return NewSMTPMailer(cfg.SMTP, params.Config.HTTP.BaseURL, logger), nil

	case "kafka":
		if params.Config.Kafka == nil || params.Config.Kafka.Broker == "" {
			return nil, errors.New("kafka broker is required for kafka provider")
		}
		logger.Info("Using Kafka mail event publisher",
			slog.String("broker", params.Config.Kafka.Broker),
			slog.String("topic", params.Config.Kafka.Topic),
		)

		mailer := NewKafkaMailer(params.Config.Kafka, params.Config.HTTP.BaseURL)

		// Register lifecycle hook to flush the writer on shutdown
		params.Lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				logger.Info("Closing Kafka mail publisher")

				if closer, ok := mailer.(interface{ Close() error }); ok {
					return closer.Close()
				}

				return nil
			},
		})

		return mailer, nil

	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}
