package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tair/catalog-mvc/kafka"
	"github.com/tair/catalog-mvc/pkg/logger"
)

func eventsCmd() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Log product change events published by the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cfg.KafkaBrokers) == 0 {
				return errors.New("KAFKA_BROKERS is not set")
			}

			consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, groupID)
			if err != nil {
				return err
			}
			defer consumer.Close()

			for _, eventType := range []string{
				kafka.EventTypeProductCreated,
				kafka.EventTypeProductUpdated,
				kafka.EventTypeProductDeleted,
			} {
				consumer.RegisterHandler(eventType, logEvent)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return consumer.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "catalog-events", "consumer group id")
	return cmd
}

func logEvent(ctx context.Context, event kafka.ProductEvent) error {
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Uint("product_id", event.ProductID).
		Str("name", event.Name).
		Uint("category_id", event.CategoryID).
		Time("occurred_at", event.Timestamp).
		Msg("Product event")
	return nil
}
