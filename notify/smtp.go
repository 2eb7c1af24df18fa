package notify

import (
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SMTPSender delivers email over authenticated SMTP with STARTTLS, for
// deployments without an email API provider.
type SMTPSender struct {
	Host     string
	Port     string
	User     string
	Pass     string
	FromName string
	FromAddr string
}

// Send implements Sender
func (s *SMTPSender) Send(e Email) error {
	addr := s.Host + ":" + s.Port
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)

	msg, err := s.message(e)
	if err != nil {
		return err
	}
	return smtp.SendMail(addr, auth, s.FromAddr, []string{e.To}, msg)
}

// message assembles the wire payload. When both bodies are set they go out
// together as multipart/alternative so receivers keep the plain-text part.
func (s *SMTPSender) message(e Email) ([]byte, error) {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %q <%s>\r\n", s.FromName, s.FromAddr)
	fmt.Fprintf(&msg, "To: %s\r\n", e.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", e.Subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")

	switch {
	case e.Text != "" && e.HTML != "":
		var body strings.Builder
		mw := multipart.NewWriter(&body)
		fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

		part, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
		if err != nil {
			return nil, err
		}
		fmt.Fprint(part, e.Text)

		part, err = mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=utf-8"}})
		if err != nil {
			return nil, err
		}
		fmt.Fprint(part, e.HTML)

		if err := mw.Close(); err != nil {
			return nil, err
		}
		msg.WriteString(body.String())
		msg.WriteString("\r\n")
	case e.HTML != "":
		fmt.Fprintf(&msg, "Content-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", e.HTML)
	default:
		fmt.Fprintf(&msg, "Content-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", e.Text)
	}

	return []byte(msg.String()), nil
}
