package waitlist

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

//go:generate mockgen -source=emailer.go -package waitlist -destination emailer_mock.go Emailer
type Emailer interface {
	Send(c context.Context, recipient string, subject string, htmlBody string, textBody string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type smtpEmailer struct {
	config SMTPConfig
}

func NewEmailer(config SMTPConfig) Emailer {
	return &smtpEmailer{
		config: config,
	}
}

func (e *smtpEmailer) Send(c context.Context, recipient string, subject string, htmlBody string, textBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(e.config.Sender); err != nil {
		return fmt.Errorf("error setting sender %s: %s", e.config.Sender, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("error setting recipient: %s", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(e.config.Host,
		mail.WithPort(e.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(e.config.Username),
		mail.WithPassword(e.config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("error creating smtp client: %s", err)
	}

	return client.DialAndSendWithContext(c, msg)
}
