package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manjunath2605/courtcase-app/api/handlers"
	"github.com/manjunath2605/courtcase-app/config"
)

func TestContactRequiresAllFields(t *testing.T) {
	h := handlers.Contact{Mail: &recordingNotifier{}, Config: mailReadyConfig()}

	cases := []string{
		`{"email": "a@b.com", "phone": "123", "message": "hi"}`,
		`{"name": "A", "phone": "123", "message": "hi"}`,
		`{"name": "A", "email": "a@b.com", "message": "hi"}`,
		`{"name": "A", "email": "a@b.com", "phone": "123"}`,
		`{"name": " ", "email": "a@b.com", "phone": "123", "message": "hi"}`,
	}
	for _, body := range cases {
		rr := httptest.NewRecorder()
		http.HandlerFunc(h.ContactHandler).ServeHTTP(rr, postJSON(t, "/api/contact", body))

		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.JSONEq(t, `{"msg": "name, email, phone, and message are required"}`, rr.Body.String())
	}
}

func TestContactMailNotConfigured(t *testing.T) {
	h := handlers.Contact{Mail: &recordingNotifier{}, Config: &config.Config{}}

	rr := httptest.NewRecorder()
	body := `{"name": "A", "email": "a@b.com", "phone": "123", "message": "hi"}`
	http.HandlerFunc(h.ContactHandler).ServeHTTP(rr, postJSON(t, "/api/contact", body))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"msg": "Contact delivery is not configured. Set email environment variables."}`, rr.Body.String())
}

func TestContactQueuesEmail(t *testing.T) {
	mail := &recordingNotifier{}
	conf := mailReadyConfig()
	conf.ContactEmailTo = "office@example.com"
	h := handlers.Contact{Mail: mail, Config: conf}

	rr := httptest.NewRecorder()
	body := `{"name": "A Person", "email": "a@b.com", "phone": "123", "message": "please call"}`
	http.HandlerFunc(h.ContactHandler).ServeHTTP(rr, postJSON(t, "/api/contact", body))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"msg": "Contact details submitted successfully", "emailSent": true}`, rr.Body.String())

	if assert.Len(t, mail.emails, 1) {
		assert.Equal(t, "office@example.com", mail.emails[0].To)
		assert.Contains(t, mail.emails[0].Text, "please call")
	}
}
