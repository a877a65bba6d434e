package consumer

import (
	"context"
	"encoding/json"

	"github.com/skylift/workforce/internal/events"
	"github.com/skylift/workforce/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle reads leave lifecycle events and hands them to the
// notification dispatcher. Poison messages (undecodable) are committed and
// dropped; dispatch failures leave the message uncommitted for redelivery.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := dispatcher.Dispatch(ctx, event); err != nil {
			log.Error("dispatch leave lifecycle event failed",
				zap.String("event_type", event.EventType),
				zap.String("leave_request_id", event.LeaveRequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave lifecycle event handled",
			zap.String("event_type", event.EventType),
			zap.String("leave_request_id", event.LeaveRequestID),
		)
	}
}
