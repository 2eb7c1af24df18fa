package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/api/handlers"
	"github.com/manjunath2605/courtcase-app/databases/mocks"
	"github.com/manjunath2605/courtcase-app/models"
	"github.com/manjunath2605/courtcase-app/notify"
)

// recordingNotifier captures enqueued email instead of delivering it
type recordingNotifier struct {
	emails []notify.Email
}

func (r *recordingNotifier) Enqueue(e notify.Email) bool {
	r.emails = append(r.emails, e)
	return true
}

func caseRequest(t *testing.T, method, target, body string, identity api.Identity) *http.Request {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, target, nil)
	} else {
		req, err = http.NewRequest(method, target, strings.NewReader(body))
	}
	if err != nil {
		t.Fatal(err)
	}
	return req.WithContext(api.WithIdentity(req.Context(), identity))
}

func staffIdentity(role models.Role) api.Identity {
	return api.Identity{ID: "64e2f0000000000000000001", Role: role, Email: "staff@office.test", Name: "Staff"}
}

func TestCreateCaseSeedsHistory(t *testing.T) {
	db := mocks.NewCaseDatabase(t)
	db.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	h := handlers.Case{DB: db, Mail: &recordingNotifier{}}

	body := `{"caseNo": "CR-1", "status": "Open", "nextDate": "2024-01-10", "court": "District"}`
	req := caseRequest(t, "POST", "/api/cases", body, staffIdentity(models.RoleAdmin))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var created models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	if assert.Len(t, created.History, 1) {
		assert.Equal(t, "2024-01-10", created.History[0].Date)
		assert.Equal(t, "Open", created.History[0].Status)
	}
}

func TestCreateCaseRequiresCaseNo(t *testing.T) {
	h := handlers.Case{DB: mocks.NewCaseDatabase(t), Mail: &recordingNotifier{}}

	req := caseRequest(t, "POST", "/api/cases", `{"status": "Open"}`, staffIdentity(models.RoleUser))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg": "caseNo is required"}`, rr.Body.String())
}

func TestCreateCaseViewerForbidden(t *testing.T) {
	h := handlers.Case{DB: mocks.NewCaseDatabase(t), Mail: &recordingNotifier{}}

	req := caseRequest(t, "POST", "/api/cases", `{"caseNo": "CR-1"}`, staffIdentity(models.RoleViewer))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func existingCase(id primitive.ObjectID) *models.Case {
	return &models.Case{
		ID:         id,
		CaseNo:     "CR-1",
		Court:      "District",
		PartyName:  "A Client",
		PartyEmail: "party@example.com",
		Status:     "Open",
		NextDate:   "2024-01-10",
		History: []models.HistoryEntry{
			{Date: "2024-01-10", Status: "Open", Court: "District"},
		},
	}
}

func TestUpdateCaseAdjournmentAppendsAndNotifies(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(existingCase(id), nil)
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mail := &recordingNotifier{}
	h := handlers.Case{DB: db, Mail: mail}

	req := caseRequest(t, "PUT", "/api/cases/"+id.Hex(), `{"nextDate": "2024-02-01", "remarks": "adjourned"}`, staffIdentity(models.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var updated models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	if assert.Len(t, updated.History, 2) {
		assert.Equal(t, "2024-02-01", updated.History[1].Date)
	}

	if assert.Len(t, mail.emails, 1) {
		assert.Equal(t, "party@example.com", mail.emails[0].To)
		assert.Contains(t, mail.emails[0].Subject, "CR-1")
	}
}

func TestUpdateCaseNoHearingChangeNoAppendNoMail(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(existingCase(id), nil)
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mail := &recordingNotifier{}
	h := handlers.Case{DB: db, Mail: mail}

	req := caseRequest(t, "PUT", "/api/cases/"+id.Hex(), `{"other": "internal note"}`, staffIdentity(models.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var updated models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Len(t, updated.History, 1)
	assert.Empty(t, mail.emails)
}

func TestUpdateCaseStatusChangeAppendsButNoMail(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(existingCase(id), nil)
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mail := &recordingNotifier{}
	h := handlers.Case{DB: db, Mail: mail}

	req := caseRequest(t, "PUT", "/api/cases/"+id.Hex(), `{"status": "Closed"}`, staffIdentity(models.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var updated models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	if assert.Len(t, updated.History, 2) {
		assert.Equal(t, "Closed", updated.History[1].Status)
	}
	assert.Empty(t, mail.emails)
}

func TestUpdateCaseDateMoveRevertAndResubmit(t *testing.T) {
	id := primitive.NewObjectID()
	state := existingCase(id)

	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(state, nil)
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mail := &recordingNotifier{}
	h := handlers.Case{DB: db, Mail: mail}

	put := func(body string) models.Case {
		t.Helper()
		req := caseRequest(t, "PUT", "/api/cases/"+id.Hex(), body, staffIdentity(models.RoleUser))
		req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
		rr := httptest.NewRecorder()
		http.HandlerFunc(h.UpdateCaseHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var updated models.Case
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		return updated
	}

	// Move the hearing out: history grows, party is notified
	moved := put(`{"nextDate": "2024-02-01"}`)
	if assert.Len(t, moved.History, 2) {
		assert.Equal(t, "2024-02-01", moved.History[1].Date)
	}
	assert.Len(t, mail.emails, 1)

	// Moving it back to the original day is still a date change the
	// party hears about
	reverted := put(`{"nextDate": "2024-01-10"}`)
	if assert.Len(t, reverted.History, 3) {
		assert.Equal(t, "2024-01-10", reverted.History[2].Date)
	}
	assert.Len(t, mail.emails, 2)

	// Resubmitting the same date changes nothing: no growth, no email
	same := put(`{"nextDate": "2024-01-10"}`)
	assert.Len(t, same.History, 3)
	assert.Len(t, mail.emails, 2)
}

func TestUpdateCaseNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mongo: no documents in result"))

	h := handlers.Case{DB: db, Mail: &recordingNotifier{}}

	req := caseRequest(t, "PUT", "/api/cases/"+id.Hex(), `{"status": "Closed"}`, staffIdentity(models.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg": "Case not found"}`, rr.Body.String())
}

func TestUpdateCaseViewerForbidden(t *testing.T) {
	h := handlers.Case{DB: mocks.NewCaseDatabase(t), Mail: &recordingNotifier{}}

	req := caseRequest(t, "PUT", "/api/cases/abc", `{"status": "Closed"}`, staffIdentity(models.RoleViewer))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Read-only role"}`, rr.Body.String())
}

func TestCaseByIDClientOwnCase(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(existingCase(id), nil)

	h := handlers.Case{DB: db, Mail: &recordingNotifier{}}

	client := api.Identity{ID: "client:party@example.com", Role: models.RoleClient, Email: "Party@Example.com"}
	req := caseRequest(t, "GET", "/api/cases/"+id.Hex(), "", client)
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CaseByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCaseByIDClientOtherCaseForbidden(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(existingCase(id), nil)

	h := handlers.Case{DB: db, Mail: &recordingNotifier{}}

	client := api.Identity{ID: "client:other@example.com", Role: models.RoleClient, Email: "other@example.com"}
	req := caseRequest(t, "GET", "/api/cases/"+id.Hex(), "", client)
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CaseByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Not allowed"}`, rr.Body.String())
}

func TestCaseListClientIsScoped(t *testing.T) {
	db := mocks.NewCaseDatabase(t)
	db.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		if !ok {
			return false
		}
		_, scoped := m["partyEmail"]
		return scoped
	})).Return([]models.Case{}, nil)

	h := handlers.Case{DB: db, Mail: &recordingNotifier{}}

	client := api.Identity{ID: "client:party@example.com", Role: models.RoleClient, Email: "party@example.com"}
	req := caseRequest(t, "GET", "/api/cases", "", client)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCaseByIDInvalidObjectID(t *testing.T) {
	h := handlers.Case{DB: mocks.NewCaseDatabase(t), Mail: &recordingNotifier{}}

	req := caseRequest(t, "GET", "/api/cases/not-hex", "", staffIdentity(models.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"case_id": "not-hex"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CaseByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid case ID")
}

func TestDeleteCaseAdminOnly(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewCaseDatabase(t)
	db.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)

	h := handlers.Case{DB: db, Mail: &recordingNotifier{}}

	req := caseRequest(t, "DELETE", "/api/cases/"+id.Hex(), "", staffIdentity(models.RoleAdmin))
	req = mux.SetURLVars(req, map[string]string{"case_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.DeleteCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"msg": "Case deleted successfully"}`, rr.Body.String())
}

func TestDeleteCaseNonAdminForbidden(t *testing.T) {
	h := handlers.Case{DB: mocks.NewCaseDatabase(t), Mail: &recordingNotifier{}}

	req := caseRequest(t, "DELETE", "/api/cases/abc", "", staffIdentity(models.RoleUser))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.DeleteCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Admin only"}`, rr.Body.String())
}
