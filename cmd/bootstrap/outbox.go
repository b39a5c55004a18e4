package bootstrap

import (
	"context"
	"log/slog"

	"class-booking/internal/infra/outbox"
	"class-booking/internal/pkg/clock"
	"class-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Invoke(StartRelay),
)

// StartRelay runs the booking event relay for the lifetime of the app. It is
// a no-op when no Kafka broker is configured.
func StartRelay(lc fx.Lifecycle, cfg config.Config, store outbox.Store, clk clock.Clock, logger *slog.Logger) error {
	if !cfg.Kafka.Enabled() {
		logger.Info("outbox relay disabled", "reason", "KAFKA_BROKERS not set")
		return nil
	}

	publisher, err := outbox.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		return err
	}
	relay := outbox.NewRelay(store, publisher, clk, cfg.Kafka.PollInterval, cfg.Kafka.BatchSize)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("outbox relay started", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
	return nil
}
