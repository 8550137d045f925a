package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-workforce/internal/attendance"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeDevicePunches routes badge-terminal punches through the same punch
// service the HTTP surface uses. Invalid payloads are committed and dropped;
// transient failures are retried by not committing.
func ConsumeDevicePunches(
	ctx context.Context,
	reader *kafkago.Reader,
	attendanceService attendance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.device_punch")
	log.Info("device punch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("device punch consumer stopped")
				return
			}
			log.Error("fetch device punch message failed", zap.Error(err))
			continue
		}

		var event events.DevicePunchEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode device punch event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = attendanceService.SubmitPunch(ctx, attendance.SubmitPunchRequest{
			EmployeeID: event.EmployeeID,
			Direction:  event.Direction,
			PunchTime:  event.PunchTime.Format(time.RFC3339),
			Location:   event.Location,
			DeviceRef:  event.DeviceRef,
		})
		if err != nil {
			if isRejectedPunch(err) {
				log.Warn("device punch rejected, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("device_ref", event.DeviceRef),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("process device punch failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("device_ref", event.DeviceRef),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit device punch message failed", zap.Error(err))
			continue
		}

		log.Info("device punch processed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("direction", event.Direction),
			zap.String("device_ref", event.DeviceRef),
		)
	}
}

// isRejectedPunch reports whether the punch failed validation rather than
// infrastructure; such messages will never succeed and must not be retried.
func isRejectedPunch(err error) bool {
	if errors.Is(err, employeeerrors.ErrEmployeeNotFound) || errors.Is(err, employeeerrors.ErrEmployeeInactive) {
		return true
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus >= 400 && appErr.HTTPStatus < 500
	}
	return false
}
