package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const notificationTimeout = 10 * time.Second

// Notifier delivers league notifications to a fixed recipient list.
// A nil Notifier, or one without a sender or recipients, sends nothing.
type Notifier struct {
	sender     EmailSender
	from       string
	recipients []string
}

func NewNotifier(sender EmailSender, from string, recipients []string) *Notifier {
	cleaned := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		if recipient = strings.TrimSpace(recipient); recipient != "" {
			cleaned = append(cleaned, recipient)
		}
	}
	return &Notifier{sender: sender, from: from, recipients: cleaned}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && len(n.recipients) > 0
}

// Send delivers message to every recipient and joins the failures.
func (n *Notifier) Send(ctx context.Context, message Message) error {
	if !n.Enabled() {
		return nil
	}
	if message.Subject == "" || message.Body == "" {
		return fmt.Errorf("email subject and body are required")
	}

	var errs []error
	for _, recipient := range n.recipients {
		if err := n.sender.SendFrom(ctx, recipient, message.Subject, message.Body, n.from); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", recipient, err))
		}
	}
	return errors.Join(errs...)
}

// SendAsync sends message in the background. The request context only
// contributes values; its cancellation does not abort delivery.
func (n *Notifier) SendAsync(ctx context.Context, message Message, logger *zerolog.Logger) {
	if !n.Enabled() {
		return
	}

	go func() {
		sendCtx, cancel := newEmailContext(ctx, notificationTimeout)
		defer cancel()
		if err := n.Send(sendCtx, message); err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("subject", message.Subject).Msg("Failed to send notification email")
			}
			return
		}
		if logger != nil {
			logger.Info().Int("recipients", len(n.recipients)).Str("subject", message.Subject).Msg("Notification email sent")
		}
	}()
}
