package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/api/handlers"
	"github.com/manjunath2605/courtcase-app/databases/mocks"
	"github.com/manjunath2605/courtcase-app/models"
)

func chatMessage(senderID string, age time.Duration) *models.ChatMessage {
	return &models.ChatMessage{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID,
		SenderName: "Staff",
		Message:    "hello",
		ReadBy:     []string{senderID},
		CreatedAt:  primitive.NewDateTimeFromTime(time.Now().Add(-age)),
	}
}

func TestChatClientForbidden(t *testing.T) {
	h := handlers.Chat{DB: mocks.NewChatDatabase(t)}

	client := api.Identity{ID: "client:party@example.com", Role: models.RoleClient, Email: "party@example.com"}
	req := caseRequest(t, "GET", "/api/chat", "", client)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.ChatHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Not allowed"}`, rr.Body.String())
}

func TestChatHandlerReturnsMessages(t *testing.T) {
	db := mocks.NewChatDatabase(t)
	db.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.ChatMessage{
		*chatMessage("u1", time.Minute),
	}, nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "GET", "/api/chat", "", staffIdentity(models.RoleViewer))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.ChatHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var messages []models.ChatMessage
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &messages))
	assert.Len(t, messages, 1)
}

func TestUnreadCount(t *testing.T) {
	db := mocks.NewChatDatabase(t)
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(3), nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "GET", "/api/chat/unread-count", "", staffIdentity(models.RoleUser))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UnreadCountHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count": 3}`, rr.Body.String())
}

func TestCreateChatMessageRequiresText(t *testing.T) {
	h := handlers.Chat{DB: mocks.NewChatDatabase(t), UDB: mocks.NewUserDatabase(t)}

	req := caseRequest(t, "POST", "/api/chat", `{"message": "   "}`, staffIdentity(models.RoleUser))
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CreateChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg": "Message required"}`, rr.Body.String())
}

func TestCreateChatMessageSeedsReadBy(t *testing.T) {
	identity := staffIdentity(models.RoleUser)

	db := mocks.NewChatDatabase(t)
	db.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	udb := mocks.NewUserDatabase(t)
	udb.On("FindOne", mock.Anything, mock.Anything).Return(&models.User{Name: "Full Name"}, nil)

	h := handlers.Chat{DB: db, UDB: udb}

	req := caseRequest(t, "POST", "/api/chat", `{"message": "hello team"}`, identity)
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.CreateChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var msg models.ChatMessage
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	assert.Equal(t, "Full Name", msg.SenderName)
	assert.Equal(t, []string{identity.ID}, msg.ReadBy)
}

func TestUpdateChatMessageNotAuthor(t *testing.T) {
	msg := chatMessage("someone-else", time.Minute)

	db := mocks.NewChatDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(msg, nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "PUT", "/api/chat/"+msg.ID.Hex(), `{"message": "edited"}`, staffIdentity(models.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"message_id": msg.ID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Not allowed"}`, rr.Body.String())
}

func TestUpdateChatMessageWindowExpired(t *testing.T) {
	identity := staffIdentity(models.RoleUser)
	msg := chatMessage(identity.ID, 6*time.Minute)

	db := mocks.NewChatDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(msg, nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "PUT", "/api/chat/"+msg.ID.Hex(), `{"message": "edited"}`, identity)
	req = mux.SetURLVars(req, map[string]string{"message_id": msg.ID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Edit time expired"}`, rr.Body.String())
}

func TestUpdateChatMessageWithinWindow(t *testing.T) {
	identity := staffIdentity(models.RoleUser)
	msg := chatMessage(identity.ID, time.Minute)

	db := mocks.NewChatDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(msg, nil)
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "PUT", "/api/chat/"+msg.ID.Hex(), `{"message": "edited"}`, identity)
	req = mux.SetURLVars(req, map[string]string{"message_id": msg.ID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.UpdateChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var updated models.ChatMessage
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "edited", updated.Message)
	assert.True(t, updated.Edited)
}

func TestDeleteChatMessageOwnerWindowExpired(t *testing.T) {
	identity := staffIdentity(models.RoleUser)
	msg := chatMessage(identity.ID, 10*time.Minute)

	db := mocks.NewChatDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(msg, nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "DELETE", "/api/chat/"+msg.ID.Hex(), "", identity)
	req = mux.SetURLVars(req, map[string]string{"message_id": msg.ID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.DeleteChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"msg": "Delete time expired"}`, rr.Body.String())
}

func TestDeleteChatMessageAdminBypassesWindow(t *testing.T) {
	msg := chatMessage("someone-else", time.Hour)

	db := mocks.NewChatDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(msg, nil)
	db.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)

	h := handlers.Chat{DB: db}

	req := caseRequest(t, "DELETE", "/api/chat/"+msg.ID.Hex(), "", staffIdentity(models.RoleAdmin))
	req = mux.SetURLVars(req, map[string]string{"message_id": msg.ID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.DeleteChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true}`, rr.Body.String())
}

func TestDeleteChatMessageNotFound(t *testing.T) {
	db := mocks.NewChatDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mongo: no documents in result"))

	id := primitive.NewObjectID()
	h := handlers.Chat{DB: db}

	req := caseRequest(t, "DELETE", "/api/chat/"+id.Hex(), "", staffIdentity(models.RoleAdmin))
	req = mux.SetURLVars(req, map[string]string{"message_id": id.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.DeleteChatMessageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg": "Message not found"}`, rr.Body.String())
}
