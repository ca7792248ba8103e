package application

import (
	"context"

	"github.com/tourvista/service-tours/pkg/kafka"
)

// EventPublisher abstracts the Kafka producer so services can be exercised
// without a broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}
