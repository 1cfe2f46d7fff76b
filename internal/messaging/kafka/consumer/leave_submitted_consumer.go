package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leaveflow/internal/events"
	"go-leaveflow/internal/notification"
)

// ConsumeLeaveSubmitted turns submitted events into an inbox entry
// for the requester confirming the submission and its outcome.
func ConsumeLeaveSubmitted(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_submitted")
	log.Info("leave submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave submitted consumer stopped")
				return
			}
			log.Error("fetch leave submitted message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := fmt.Sprintf("Leave request %s submitted", event.Reference)
		body := fmt.Sprintf("Your leave request from %s to %s was submitted and is %s.",
			event.StartDate, event.EndDate, event.Status)

		err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			UserID:    event.EmployeeID,
			Kind:      notification.KindRequestSubmitted,
			Title:     title,
			Body:      body,
			Reference: event.Reference,
		})
		if err != nil {
			log.Error("create submission notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave submitted message failed", zap.Error(err))
			continue
		}

		log.Info("submission notification created",
			zap.String("leave_id", event.LeaveID),
			zap.String("reference", event.Reference),
		)
	}
}
