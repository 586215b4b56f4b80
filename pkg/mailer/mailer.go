// Package mailer sends transactional email through SendGrid, or writes it
// to the log when no provider is configured.
package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"coursemaster_backend/internal/config"
	"coursemaster_backend/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Message struct {
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the provider from config. An empty SendGrid key falls back to
// the console mailer.
func New(cfg *config.MailConfig) Mailer {
	if cfg.Provider == "sendgrid" && cfg.SendgridAPIKey != "" {
		return NewSendgrid(cfg.SendgridAPIKey, cfg.FromName, cfg.FromEmail)
	}
	return NewConsole(cfg.FromName)
}

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendgrid(key, appName, fromEmail string) Mailer {
	return &sendgridMailer{
		key:        key,
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (m *sendgridMailer) build(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return v3
}

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.build(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

type consoleMailer struct {
	subjPrefix string
}

func NewConsole(appName string) Mailer {
	return &consoleMailer{subjPrefix: "[" + appName + "] "}
}

func (m *consoleMailer) Send(_ context.Context, msg Message) error {
	logger.Log.Info("email",
		zap.String("to", msg.To.String()),
		zap.String("subject", m.subjPrefix+msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}
