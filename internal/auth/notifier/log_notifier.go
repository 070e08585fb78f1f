// Package notifier delivers password-reset tokens to users. The production
// deployment is expected to plug in a mail sender; LogNotifier is the
// development stand-in that writes the token to the log.
package notifier

import (
	"context"
	"log/slog"
)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	n.logger.InfoContext(ctx, "password reset token issued", "email", email, "token", token)
	return nil
}
