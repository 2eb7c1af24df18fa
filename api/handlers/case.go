package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gorilla/mux"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/config"
	"github.com/manjunath2605/courtcase-app/databases"
	"github.com/manjunath2605/courtcase-app/models"
	"github.com/manjunath2605/courtcase-app/notify"
	templates "github.com/manjunath2605/courtcase-app/templates/html"
)

// Notifier is the slice of the mail dispatcher the handlers need
type Notifier interface {
	Enqueue(e notify.Email) bool
}

// Case handles case-related requests
type Case struct {
	DB   databases.CaseDatabase
	Mail Notifier
}

// caseInput is the mutable surface of a case. Pointer fields so that absent
// keys leave the stored value untouched on update. History, id and
// timestamps are never writable through the API.
type caseInput struct {
	CaseNo           *string `json:"caseNo"`
	Court            *string `json:"court"`
	PartyName        *string `json:"partyName"`
	PartyEmail       *string `json:"partyEmail"`
	PartyPhone       *string `json:"partyPhone"`
	Status           *string `json:"status"`
	NextDate         *string `json:"nextDate"`
	Remarks          *string `json:"remarks"`
	Other            *string `json:"other"`
	ClientAccessCode *string `json:"clientAccessCode"`
}

func (in caseInput) apply(c *models.Case) {
	if in.CaseNo != nil {
		c.CaseNo = strings.TrimSpace(*in.CaseNo)
	}
	if in.Court != nil {
		c.Court = *in.Court
	}
	if in.PartyName != nil {
		c.PartyName = *in.PartyName
	}
	if in.PartyEmail != nil {
		c.PartyEmail = strings.TrimSpace(*in.PartyEmail)
	}
	if in.PartyPhone != nil {
		c.PartyPhone = *in.PartyPhone
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.NextDate != nil {
		c.NextDate = normalizeDateKey(*in.NextDate)
	}
	if in.Remarks != nil {
		c.Remarks = *in.Remarks
	}
	if in.Other != nil {
		c.Other = *in.Other
	}
	if in.ClientAccessCode != nil && *in.ClientAccessCode != "" {
		sum := sha256.Sum256([]byte(*in.ClientAccessCode))
		c.ClientAccessCodeHash = hex.EncodeToString(sum[:])
	}
}

// denyCaseWrite rejects read-only callers. Returns true when the request was
// already answered.
func denyCaseWrite(w http.ResponseWriter, identity api.Identity) bool {
	if identity.Role == models.RoleClient {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"msg": "Client is read-only"}`))
		return true
	}
	if !identity.Role.CanWriteCases() {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"msg": "Read-only role"}`))
		return true
	}
	return false
}

// partyEmailFilter matches the party email exactly, ignoring case
func partyEmailFilter(email string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}
}

// CaseHandler returns all cases visible to the caller, optionally filtered
// by court and status
func (cc Case) CaseHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := api.IdentityFromContext(r.Context())

	filter := bson.M{}
	if identity.Role == models.RoleClient {
		filter["partyEmail"] = partyEmailFilter(identity.Email)
	}
	if court := r.URL.Query().Get("court"); court != "" {
		filter["court"] = court
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := cc.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get cases", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Case{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// CasesTodayHandler returns the cases with a hearing scheduled today
func (cc Case) CasesTodayHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := api.IdentityFromContext(r.Context())

	filter := bson.M{"nextDate": time.Now().UTC().Format("2006-01-02")}
	if identity.Role == models.RoleClient {
		filter["partyEmail"] = partyEmailFilter(identity.Email)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := cc.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get today's cases", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Case{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// CaseByIDHandler returns a single case. Clients only see their own.
func (cc Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := api.IdentityFromContext(r.Context())
	caseID := mux.Vars(r)["case_id"]

	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := cc.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"msg": "Case not found"}`))
		return
	}

	if identity.Role == models.RoleClient && !strings.EqualFold(dbResp.PartyEmail, identity.Email) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"msg": "Not allowed"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// CreateCaseHandler creates a new case, seeding the hearing history when a
// hearing date and status are present
func (cc Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := api.IdentityFromContext(r.Context())
	if denyCaseWrite(w, identity) {
		return
	}

	var in caseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	newCase := models.Case{}
	in.apply(&newCase)
	if newCase.CaseNo == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"msg": "caseNo is required"}`))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	newCase.ID = primitive.NewObjectID()
	newCase.CreatedAt = now
	newCase.UpdatedAt = now

	entry := buildHistoryEntry(&newCase, identity.ID)
	newCase.History = applyHistoryAppend(nil, entry, true)
	if newCase.History == nil {
		newCase.History = []models.HistoryEntry{}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := cc.DB.InsertOne(ctx, newCase); err != nil {
		config.ErrorStatus("failed to create case", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(newCase)
}

// UpdateCaseHandler applies field updates to a case, appends to the hearing
// history per the bootstrap/dedup rules, and queues a notification email to
// the party when the hearing date moved to a different day
func (cc Case) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := api.IdentityFromContext(r.Context())
	if denyCaseWrite(w, identity) {
		return
	}

	caseID := mux.Vars(r)["case_id"]
	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	var in caseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existing, err := cc.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"msg": "Case not found"}`))
		return
	}

	before := snapshotOf(existing)
	in.apply(existing)
	after := snapshotOf(existing)

	changed := hearingChanged(before, after)
	entry := buildHistoryEntry(existing, identity.ID)
	existing.History = applyHistoryAppend(existing.History, entry, changed)
	existing.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	update := bson.M{"$set": bson.M{
		"caseNo":     existing.CaseNo,
		"court":      existing.Court,
		"partyName":  existing.PartyName,
		"partyEmail": existing.PartyEmail,
		"partyPhone": existing.PartyPhone,
		"status":     existing.Status,
		"nextDate":   existing.NextDate,
		"remarks":    existing.Remarks,
		"other":      existing.Other,
		"history":    existing.History,
		"updatedAt":  existing.UpdatedAt,
	}}
	if existing.ClientAccessCodeHash != "" {
		update["$set"].(bson.M)["clientAccessCodeHash"] = existing.ClientAccessCodeHash
	}

	if err := cc.DB.UpdateOne(ctx, bson.M{"_id": bID}, update); err != nil {
		config.ErrorStatus("failed to update case", http.StatusInternalServerError, w, err)
		return
	}

	// Queue the party notification after the mutation is durable. Delivery
	// is fire-and-forget; a failed send never affects this response.
	if nextDateChanged(before, after) && notify.ValidEmail(existing.PartyEmail) {
		cc.queueHearingEmail(before, existing)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(existing)
}

func (cc Case) queueHearingEmail(before hearingSnapshot, c *models.Case) {
	u := templates.HearingUpdate{
		CaseNo:    c.CaseNo,
		PartyName: c.PartyName,
		Court:     c.Court,
		Status:    c.Status,
		Remarks:   c.Remarks,
		OldDate:   normalizeDateKey(before.NextDate),
		NewDate:   normalizeDateKey(c.NextDate),
	}
	cc.Mail.Enqueue(notify.Email{
		To:      c.PartyEmail,
		Subject: "Hearing Date Updated - Case " + c.CaseNo,
		Text:    templates.RenderHearingUpdateText(u),
		HTML:    templates.RenderHearingUpdate(u),
	})
}

// DeleteCaseHandler removes a case. Admin only.
func (cc Case) DeleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := api.IdentityFromContext(r.Context())
	if identity.Role == models.RoleClient {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"msg": "Client is read-only"}`))
		return
	}
	if identity.Role != models.RoleAdmin {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"msg": "Admin only"}`))
		return
	}

	caseID := mux.Vars(r)["case_id"]
	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := cc.DB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete case", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"msg": "Case deleted successfully"}`))
}
