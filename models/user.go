package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Staff accounts
// only; clients authenticate against their case party email instead.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Role     Role               `json:"role" bson:"role"`

	ResetToken       string             `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry primitive.DateTime `json:"-" bson:"resetTokenExpiry,omitempty"`

	// Login OTP bookkeeping, cleared on successful verification.
	LoginOtpHash       string             `json:"-" bson:"loginOtpHash,omitempty"`
	LoginOtpExpiry     primitive.DateTime `json:"-" bson:"loginOtpExpiry,omitempty"`
	LoginOtpAttempts   int                `json:"-" bson:"loginOtpAttempts,omitempty"`
	LoginOtpLastSentAt primitive.DateTime `json:"-" bson:"loginOtpLastSentAt,omitempty"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
