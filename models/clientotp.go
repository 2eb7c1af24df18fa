package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ClientOtp holds the structure for the clientotps collection in mongo. One
// ephemeral record per client email; deleted on successful verification,
// expiry, or attempt exhaustion.
type ClientOtp struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email      string             `json:"email" bson:"email"`
	OtpHash    string             `json:"-" bson:"otpHash"`
	Expiry     primitive.DateTime `json:"expiry" bson:"expiry"`
	Attempts   int                `json:"attempts" bson:"attempts"`
	LastSentAt primitive.DateTime `json:"lastSentAt" bson:"lastSentAt"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
