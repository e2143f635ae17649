package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ourcash/internal/amqp"
)

// Notifier delivers a low-balance notification somewhere a human will
// see it. The default implementation writes to the structured log;
// mail or push integrations plug in behind the same interface.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, subject, body string) error {
	slog.WarnContext(ctx, subject, "detail", body)
	return nil
}

// AlertWorker consumes low-balance alert messages and turns them into
// notifications.
type AlertWorker struct {
	notifier Notifier
}

func NewAlertWorker(notifier Notifier) *AlertWorker {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &AlertWorker{notifier: notifier}
}

// HandleAlert processes a single low-balance alert message.
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.LowBalanceAlertMessage) error {
	if msg.Date == "" || msg.AccountName == "" {
		return fmt.Errorf("malformed alert message: date=%q account=%q", msg.Date, msg.AccountName)
	}

	slog.InfoContext(ctx, "Processing low balance alert",
		"run_id", msg.RunID,
		"date", msg.Date,
		"balance", msg.RunningBalance)

	subject := fmt.Sprintf("Low balance warning for %s", msg.Date)
	body := fmt.Sprintf("%s is projected to end %s at %s, below the %s threshold (run %s)",
		msg.AccountName, msg.Date, msg.RunningBalance, msg.Threshold, msg.RunID)

	if err := w.notifier.Notify(ctx, subject, body); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}

	return nil
}
