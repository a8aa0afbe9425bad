package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/events"
)

// StartAuditWorker subscribes an audit logger to login and resource events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Int64("account_id", event.Actor.AccountID),
			zap.String("username", event.Actor.Username),
			zap.String("role", string(event.Actor.Role)),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	dispatcher.Subscribe(events.EventLoginSucceeded, handler)
	dispatcher.Subscribe(events.EventResourceCreated, handler)
	dispatcher.Subscribe(events.EventResourceUpdated, handler)
	dispatcher.Subscribe(events.EventResourceDeleted, handler)
}
