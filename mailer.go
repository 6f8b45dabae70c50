package authapi

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	mail "github.com/wneessen/go-mail"
)

// Mailer is the notification sink for password recovery. Sends are
// fire-and-forget from the flow's perspective: a failure is logged,
// never classified.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, code string) error
}

// NoopMailer drops every message. Used in the test environment.
type NoopMailer struct{}

func (NoopMailer) SendPasswordReset(ctx context.Context, to, name, code string) error {
	return nil
}

// SMTPMailer delivers over SMTP.
type SMTPMailer struct {
	client *mail.Client
	from   string
	appURL string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer builds a Mailer from the process configuration.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
	}

	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "smtp client")
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.EmailFrom,
		appURL: cfg.AppURL,
	}, nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "reset mail from")
	}
	if err := msg.To(to); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "reset mail to")
	}

	msg.Subject("Reset Password")
	msg.SetBodyString(mail.TypeTextHTML, passwordResetBody(m.appURL, name, code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "send reset mail")
	}

	return nil
}

func passwordResetBody(appURL, name, code string) string {
	link := fmt.Sprintf("%s/lozinka/reset?resetToken=%s", appURL, code)
	return fmt.Sprintf(`
    <p>Poštovani/a %s,</p>
    <br>
    <p>Primili smo zahtev za promenu lozinke za Vaš nalog.</p>
    <p>Da biste uspešno kompletirali proces promene lozinke, kliknite na sledeći link: <a href='%s'>%s</a></p>
    <br>
    <p>Hvala Vam na korišćenju naše aplikacije.</p>
    <br>
    <p>S poštovanjem,</p>
    <p>Projektni tim</p>
  `, name, link, link)
}
