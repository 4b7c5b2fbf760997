package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridSender delivers mail through the SendGrid v3 API.
type SendgridSender struct {
	key  string
	from *sgmail.Email
}

func NewSendgridSender(key, appName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		key:  key,
		from: sgmail.NewEmail(appName, fromEmail),
	}
}

func (s *SendgridSender) SendOtpEmail(ctx context.Context, toEmail string, toName string, code string) error {
	p := sgmail.NewPersonalization()
	p.Subject = "Your verification code"
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", otpTextBody(toName, code)),
		sgmail.NewContent("text/html", otpHtmlBody(toName, code)),
	)

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func otpTextBody(name, code string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s. It expires in 10 minutes.\n\nIf you did not request this, you can ignore this email.\n",
		name, code)
}

func otpHtmlBody(name, code string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 10 minutes.</p><p>If you did not request this, you can ignore this email.</p>`,
		name, code)
}
