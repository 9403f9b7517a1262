package watcher

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type EmailConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c EmailConfig) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

type EmailNotifier struct {
	config EmailConfig
}

func NewEmailNotifier(config EmailConfig) EmailNotifier {
	return EmailNotifier{config: config}
}

func (n EmailNotifier) Name() string {
	return "email"
}

func (n EmailNotifier) Notify(ctx context.Context, msg Message) error {
	ctx, span := tracer.Start(ctx, "EmailNotifier.Notify")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Leonardo <%s>", n.config.EmailAddress)
	mail.To = n.config.To
	mail.Subject = msg.Title
	mail.Text = []byte(msg.Text)

	addr := fmt.Sprintf("%s:%d", n.config.Server, n.config.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", n.config.EmailAddress, n.config.Password, n.config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
