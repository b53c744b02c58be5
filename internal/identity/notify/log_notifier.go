// Package notify holds delivery-collaborator implementations. Real email
// and SMS transport lives outside this service; the log notifier records
// that a dispatch happened without ever logging the code itself.
package notify

import (
	"context"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/logging"
)

type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendCode(ctx context.Context, to, purpose, code, recipientName string) error {
	n.log.Info(ctx, "dispatching one-time code", "to", to, "purpose", purpose)

	return nil
}
