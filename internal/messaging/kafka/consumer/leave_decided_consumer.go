package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leaveflow/internal/events"
	"go-leaveflow/internal/notification"
)

// ConsumeLeaveDecided notifies the requester of every decision taken
// on their request, including the resulting aggregate status.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		action := "approved"
		if strings.EqualFold(event.Action, "REJECT") {
			action = "rejected"
		}
		title := fmt.Sprintf("Leave request %s %s at %s level", event.Reference, action, event.Level)
		body := fmt.Sprintf("Your leave request %s is now %s.", event.Reference, event.NewStatus)

		err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			UserID:    event.EmployeeID,
			Kind:      notification.KindRequestDecided,
			Title:     title,
			Body:      body,
			Reference: event.Reference,
		})
		if err != nil {
			log.Error("create decision notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("decision notification created",
			zap.String("leave_id", event.LeaveID),
			zap.String("reference", event.Reference),
			zap.String("new_status", event.NewStatus),
		)
	}
}
