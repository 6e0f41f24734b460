// Package notify defines the outbound notification collaborator. The
// orchestration core hands it a post-completion summary; delivery (email,
// webhooks, chat) is someone else's problem.
package notify

import (
	"context"

	"domainguard/pkg/logger"

	"go.uber.org/zap"
)

// Summary is the post-completion payload handed to the notifier.
type Summary struct {
	// Domain is the scanned domain.
	Domain string
	// CriticalCount is the number of critical findings.
	CriticalCount int
	// HighCount is the number of high findings.
	HighCount int
}

// Notifier receives scan completion summaries. Implementations must not block
// the scan pipeline; errors are the implementation's to handle.
//
//go:generate mockgen -package mocknotify -source=notify.go -destination=mock/mocknotify.go *
type Notifier interface {
	ScanCompleted(ctx context.Context, summary Summary) error
}

// LogNotifier writes completion summaries to the structured log. It is the
// default collaborator when no delivery channel is wired.
type LogNotifier struct{}

// ScanCompleted implements Notifier.
func (LogNotifier) ScanCompleted(ctx context.Context, summary Summary) error {
	logger.Info(ctx, "scan completed",
		zap.String("domain", summary.Domain),
		zap.Int("critical", summary.CriticalCount),
		zap.Int("high", summary.HighCount))

	return nil
}
