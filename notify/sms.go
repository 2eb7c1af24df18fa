package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/config"
)

// SMSSender delivers a short text message
type SMSSender interface {
	SendSMS(to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API
type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewSMSSender builds the SMS transport from the config, or nil when Twilio
// credentials are absent
func NewSMSSender(conf *config.Config) SMSSender {
	if !conf.SMSConfigured() {
		return nil
	}
	return NewTwilioSender(conf.TwilioAccountSID, conf.TwilioAuthToken, conf.TwilioFromNumber)
}

// NewTwilioSender creates a Twilio-backed SMS sender
func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, fromNumber: fromNumber}
}

// SendSMS implements SMSSender. Without a configured from-number the message
// is logged instead of sent.
func (t *TwilioSender) SendSMS(to, body string) error {
	if t.fromNumber == "" {
		zap.S().Infow("sms transport not configured, skipping", "to", to)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
