package email

import (
	"context"
	"testing"

	"github.com/gatherly/server/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSendDisabledDropsMessage(t *testing.T) {
	service := NewService(config.EmailConfig{Enabled: false}, zerolog.Nop())

	err := service.Send(context.Background(), []string{"alice@example.com"}, "subject", "body")

	require.NoError(t, err)
}

func TestSendDisabledWithoutAPIKey(t *testing.T) {
	service := NewService(config.EmailConfig{Enabled: true, APIKey: ""}, zerolog.Nop())

	err := service.Send(context.Background(), []string{"alice@example.com"}, "subject", "body")

	require.NoError(t, err)
}

func TestSendRequiresRecipients(t *testing.T) {
	service := NewService(config.EmailConfig{}, zerolog.Nop())

	err := service.Send(context.Background(), nil, "subject", "body")

	require.Error(t, err)
}
