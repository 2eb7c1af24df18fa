package notify

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers email through the SendGrid HTTPS API
type SendGridSender struct {
	APIKey   string
	FromName string
	FromAddr string
}

// Send implements Sender
func (s *SendGridSender) Send(e Email) error {
	from := mail.NewEmail(s.FromName, s.FromAddr)
	to := mail.NewEmail("", e.To)
	html := e.HTML
	if html == "" {
		html = e.Text
	}
	message := mail.NewSingleEmail(from, e.Subject, to, e.Text, html)

	client := sendgrid.NewSendClient(s.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
