package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
}

func TestParseOriginsDedupesAndTrims(t *testing.T) {
	os.Setenv("APP_BASE_URL", "https://example.com/")
	os.Setenv("CORS_ORIGINS", "https://example.com, https://office.example.com")
	defer os.Unsetenv("APP_BASE_URL")
	defer os.Unsetenv("CORS_ORIGINS")

	origins := parseOrigins()
	assert.Contains(t, origins, "http://localhost:3000")
	assert.Contains(t, origins, "https://example.com")
	assert.Contains(t, origins, "https://office.example.com")

	count := 0
	for _, o := range origins {
		if o == "https://example.com" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMailConfigured(t *testing.T) {
	c := &Config{}
	assert.False(t, c.MailConfigured())

	c.SendGridAPIKey = "SG.xyz"
	assert.True(t, c.MailConfigured())

	c = &Config{SMTPUser: "office@example.com", SMTPPass: "hunter2"}
	assert.True(t, c.MailConfigured())
}

func TestErrorStatus(t *testing.T) {

	ErrorStatus("error it borked", http.StatusBadRequest, httptest.NewRecorder(), errors.New("bad request"))
	assert.True(t, true)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}
