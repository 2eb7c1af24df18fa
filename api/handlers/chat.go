package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/config"
	"github.com/manjunath2605/courtcase-app/databases"
	"github.com/manjunath2605/courtcase-app/models"
)

// chatEditWindow is how long the author may edit or delete a message
const chatEditWindow = 5 * time.Minute

// chatHistoryLimit caps how many messages the history endpoint returns
const chatHistoryLimit = 200

// Chat handles the internal staff chat requests
type Chat struct {
	DB  databases.ChatDatabase
	UDB databases.UserDatabase
	Hub *ChatHub
}

// requireStaff answers 403 and returns the zero identity unless the caller
// holds a staff role. Clients never see the chat.
func requireStaff(w http.ResponseWriter, r *http.Request) (api.Identity, bool) {
	identity, _ := api.IdentityFromContext(r.Context())
	if !identity.Role.Staff() {
		writeMsg(w, http.StatusForbidden, "Not allowed")
		return api.Identity{}, false
	}
	return identity, true
}

// ChatHandler returns the most recent messages in chronological order
func (h Chat) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"createdAt": 1}).
		SetLimit(chatHistoryLimit)
	messages, err := h.DB.Find(ctx, bson.M{}, opts)
	if err != nil {
		config.ErrorStatus("failed to load chat messages", http.StatusInternalServerError, w, err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(messages)
}

// UnreadCountHandler counts messages the caller has not marked read
func (h Chat) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireStaff(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := h.DB.CountDocuments(ctx, bson.M{"readBy": bson.M{"$ne": identity.ID}})
	if err != nil {
		config.ErrorStatus("failed to count unread messages", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}

// MarkReadHandler marks every message as read by the caller
func (h Chat) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireStaff(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err := h.DB.UpdateMany(ctx, bson.M{}, bson.M{"$addToSet": bson.M{"readBy": identity.ID}})
	if err != nil {
		config.ErrorStatus("failed to mark messages read", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// CreateChatMessageHandler posts a message and broadcasts it to connected
// staff
func (h Chat) CreateChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireStaff(w, r)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		writeMsg(w, http.StatusBadRequest, "Message required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	senderName := identity.Name
	if bID, err := primitive.ObjectIDFromHex(identity.ID); err == nil {
		if user, err := h.UDB.FindOne(ctx, bson.M{"_id": bID}); err == nil {
			senderName = user.Name
		}
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	msg := models.ChatMessage{
		ID:         primitive.NewObjectID(),
		SenderID:   identity.ID,
		SenderName: senderName,
		Message:    text,
		ReadBy:     []string{identity.ID},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := h.DB.InsertOne(ctx, msg); err != nil {
		config.ErrorStatus("failed to store chat message", http.StatusInternalServerError, w, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast("chat:new", msg)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(msg)
}

// UpdateChatMessageHandler edits a message. Only the author may edit, and
// only within the edit window.
func (h Chat) UpdateChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireStaff(w, r)
	if !ok {
		return
	}

	messageID := mux.Vars(r)["message_id"]
	bID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		config.ErrorStatus("invalid message ID", http.StatusBadRequest, w, err)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		writeMsg(w, http.StatusBadRequest, "Message required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	msg, err := h.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Not found")
		return
	}
	if msg.SenderID != identity.ID {
		writeMsg(w, http.StatusForbidden, "Not allowed")
		return
	}
	if time.Since(msg.CreatedAt.Time()) > chatEditWindow {
		writeMsg(w, http.StatusForbidden, "Edit time expired")
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = h.DB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{"$set": bson.M{
		"message":   text,
		"edited":    true,
		"updatedAt": now,
	}})
	if err != nil {
		config.ErrorStatus("failed to update chat message", http.StatusInternalServerError, w, err)
		return
	}

	msg.Message = text
	msg.Edited = true
	msg.UpdatedAt = now
	if h.Hub != nil {
		h.Hub.Broadcast("chat:update", msg)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(msg)
}

// DeleteChatMessageHandler deletes a message. The author may delete within
// the edit window; admins may delete any message at any time.
func (h Chat) DeleteChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireStaff(w, r)
	if !ok {
		return
	}

	messageID := mux.Vars(r)["message_id"]
	bID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		config.ErrorStatus("invalid message ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	msg, err := h.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Message not found")
		return
	}

	if !identity.Role.CanManageUsers() {
		if msg.SenderID != identity.ID {
			writeMsg(w, http.StatusForbidden, "Not allowed")
			return
		}
		if time.Since(msg.CreatedAt.Time()) > chatEditWindow {
			writeMsg(w, http.StatusForbidden, "Delete time expired")
			return
		}
	}

	if err := h.DB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete chat message", http.StatusInternalServerError, w, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast("chat:delete", map[string]string{"_id": messageID})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
