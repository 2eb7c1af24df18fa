package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ChatMessage holds the structure for the chatmessages collection in mongo
type ChatMessage struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	SenderID   string             `json:"senderId" bson:"senderId"`
	SenderName string             `json:"senderName" bson:"senderName"`
	Message    string             `json:"message" bson:"message"`
	ReadBy     []string           `json:"readBy" bson:"readBy"`
	Edited     bool               `json:"edited" bson:"edited"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt  primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
