package mailer

import (
	"context"
	"coursemaster_backend/internal/config"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicksProvider(t *testing.T) {
	_, ok := New(&config.MailConfig{Provider: "sendgrid"}).(*consoleMailer)
	assert.True(t, ok, "missing key falls back to console")

	_, ok = New(&config.MailConfig{Provider: "console", SendgridAPIKey: "key"}).(*consoleMailer)
	assert.True(t, ok)

	_, ok = New(&config.MailConfig{Provider: "sendgrid", SendgridAPIKey: "key", FromName: "CM", FromEmail: "no@cm.io"}).(*sendgridMailer)
	assert.True(t, ok)
}

func TestConsoleSend(t *testing.T) {
	m := NewConsole("CM")
	err := m.Send(context.Background(), Message{
		To:      mail.Address{Name: "Kid", Address: "kid@example.com"},
		Subject: "Hello",
		Text:    "body",
	})
	assert.NoError(t, err)
}

func TestSendgridBuild(t *testing.T) {
	m := NewSendgrid("key", "CM", "no@cm.io").(*sendgridMailer)

	v3 := m.build(Message{
		To:      mail.Address{Name: "Kid", Address: "kid@example.com"},
		Subject: "Reviewed",
		Text:    "plain",
		HTML:    "<p>html</p>",
	})

	require.Len(t, v3.Personalizations, 1)
	p := v3.Personalizations[0]
	assert.Equal(t, "[CM] Reviewed", p.Subject)
	require.Len(t, p.To, 1)
	assert.Equal(t, "kid@example.com", p.To[0].Address)
	assert.Equal(t, "no@cm.io", v3.From.Address)
	require.Len(t, v3.Content, 2)
	assert.Equal(t, "text/plain", v3.Content[0].Type)
	assert.Equal(t, "text/html", v3.Content[1].Type)
}
