package notify

import (
	"errors"
	"regexp"

	"github.com/manjunath2605/courtcase-app/config"
)

// emailRx matches local-part @ domain . tld with no whitespace
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether addr looks like a deliverable address
func ValidEmail(addr string) bool {
	return emailRx.MatchString(addr)
}

// Email is one outbound message handed to a Sender
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single email. Implementations are chosen once at startup
// from the configured transport.
type Sender interface {
	Send(e Email) error
}

// ErrNotConfigured is returned when no email transport is configured
var ErrNotConfigured = errors.New("email transport is not configured")

type disabledSender struct{}

func (disabledSender) Send(Email) error { return ErrNotConfigured }

// NewSender picks the email transport from the config: the SendGrid HTTPS
// API when a key is present, direct SMTP otherwise. Falls back to a sender
// that rejects everything so that delivery failures stay observable in logs.
func NewSender(conf *config.Config) Sender {
	if conf.SendGridAPIKey != "" {
		return &SendGridSender{
			APIKey:   conf.SendGridAPIKey,
			FromName: conf.EmailFromName,
			FromAddr: conf.EmailFromAddr,
		}
	}
	if conf.SMTPUser != "" && conf.SMTPPass != "" {
		return &SMTPSender{
			Host:     conf.SMTPHost,
			Port:     conf.SMTPPort,
			User:     conf.SMTPUser,
			Pass:     conf.SMTPPass,
			FromName: conf.EmailFromName,
			FromAddr: conf.EmailFromAddr,
		}
	}
	return disabledSender{}
}
