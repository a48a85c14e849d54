package contracts

import "context"

// EventPublisher emits best-effort domain events for downstream consumers.
// Publish failures are logged by implementations, never propagated into the
// request path.
type EventPublisher interface {
	Publish(ctx context.Context, eventName string, payload interface{}) error
}
