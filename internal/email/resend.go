package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Service sends notification email through the Resend API. When disabled
// (no API key or EMAIL_ENABLED=false) sends are logged and dropped.
type Service struct {
	config       config.EmailConfig
	resendClient *resend.Client
	logger       zerolog.Logger
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) *Service {
	s := &Service{
		config: cfg,
		logger: logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled && cfg.APIKey != "" {
		s.resendClient = resend.NewClient(cfg.APIKey)
	}
	return s
}

// Send delivers one message to all recipients.
func (s *Service) Send(ctx context.Context, to []string, subject, textBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	if s.resendClient == nil {
		s.logger.Debug().
			Strs("to", to).
			Str("subject", subject).
			Msg("email disabled; dropping message")
		return nil
	}
	return s.sendViaResend(ctx, to, subject, textBody)
}

// sendViaResend sends an email using the Resend API.
// It handles rate limit errors gracefully without retrying.
func (s *Service) sendViaResend(ctx context.Context, to []string, subject, textBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.From,
		To:      to,
		Subject: subject,
		Text:    textBody,
	}

	sent, err := s.resendClient.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("remaining", rateLimitErr.Remaining).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return fmt.Errorf("email rate limit exceeded (limit: %s, resets in: %s seconds): %w",
				rateLimitErr.Limit, rateLimitErr.Reset, err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Info().
		Str("email_id", sent.Id).
		Int("recipients", len(to)).
		Msg("email sent via Resend")
	return nil
}
