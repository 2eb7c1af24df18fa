package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/config"
	"github.com/manjunath2605/courtcase-app/notify"
	templates "github.com/manjunath2605/courtcase-app/templates/html"
)

// Contact handles the public enquiry form
type Contact struct {
	Mail   Notifier
	SMS    notify.SMSSender
	Config *config.Config
}

// ContactHandler forwards an enquiry to the office inbox, with an optional
// SMS ping when a destination number is configured
func (h Contact) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Message == "" {
		writeMsg(w, http.StatusBadRequest, "name, email, phone, and message are required")
		return
	}

	if !h.Config.MailConfigured() || h.Config.ContactEmailTo == "" {
		writeMsg(w, http.StatusInternalServerError, "Contact delivery is not configured. Set email environment variables.")
		return
	}

	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
		req.Name, req.Email, req.Phone, req.Message)
	h.Mail.Enqueue(notify.Email{
		To:      h.Config.ContactEmailTo,
		Subject: "New Contact Enquiry",
		Text:    body,
		HTML:    templates.RenderGenericEmail("New Contact Enquiry", body),
	})

	if h.SMS != nil && h.Config.SMSConfigured() && h.Config.ContactSMSTo != "" {
		sms := fmt.Sprintf("New enquiry from %s (%s)", req.Name, req.Phone)
		if err := h.SMS.SendSMS(h.Config.ContactSMSTo, sms); err != nil {
			zap.S().Errorw("contact SMS failed", "error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"msg":       "Contact details submitted successfully",
		"emailSent": true,
	})
}
