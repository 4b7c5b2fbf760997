package email

import (
	"context"
	"log/slog"
)

// ConsoleSender logs codes instead of mailing them. Used in local
// development when no SendGrid key is configured.
type ConsoleSender struct {
	logger *slog.Logger
}

func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) SendOtpEmail(_ context.Context, toEmail string, _ string, code string) error {
	s.logger.Info("otp email (console sender)", "to", toEmail, "code", code)
	return nil
}
