package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string

	JWTSecret string

	// Email transport: SendGridAPIKey takes precedence when set, otherwise
	// direct SMTP is used with the SMTP* values below.
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string
	EmailFromName  string
	EmailFromAddr  string
	ContactEmailTo string

	// Twilio SMS relay for contact enquiries. Optional.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	ContactSMSTo     string

	AllowedOrigins []string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SMTPHost:       envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       envOr("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		EmailFromName:  envOr("EMAIL_FROM_NAME", "Court Case App"),
		EmailFromAddr:  envOr("EMAIL_FROM", os.Getenv("SMTP_USER")),
		ContactEmailTo: envOr("CONTACT_EMAIL_TO", os.Getenv("SMTP_USER")),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		ContactSMSTo:     os.Getenv("CONTACT_SMS_TO"),

		AllowedOrigins: parseOrigins(),
	}

}

// setLogger builds a zap logger for the given environment name
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// envOr reads an environment variable with a fallback value
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseOrigins builds the CORS allowlist from the environment. The local
// frontend origins are always allowed.
func parseOrigins() []string {
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	seen := map[string]bool{origins[0]: true, origins[1]: true}

	raw := []string{os.Getenv("APP_BASE_URL"), os.Getenv("FRONTEND_URL")}
	raw = append(raw, strings.Split(os.Getenv("CORS_ORIGINS"), ",")...)
	for _, o := range raw {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

// MailConfigured reports whether any outbound email transport is usable
func (c *Config) MailConfigured() bool {
	return c.SendGridAPIKey != "" || (c.SMTPUser != "" && c.SMTPPass != "")
}

// SMSConfigured reports whether the Twilio relay is usable
func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
