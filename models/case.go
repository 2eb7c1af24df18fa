package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Case holds the structure for the cases collection in mongo. One document
// per tracked court matter.
type Case struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CaseNo     string             `json:"caseNo" bson:"caseNo"`
	Court      string             `json:"court" bson:"court"`
	PartyName  string             `json:"partyName" bson:"partyName"`
	PartyEmail string             `json:"partyEmail" bson:"partyEmail"`
	PartyPhone string             `json:"partyPhone" bson:"partyPhone"`
	Status     string             `json:"status" bson:"status"`

	// NextDate is the next hearing date as a day-precision key (YYYY-MM-DD).
	// Empty when no hearing is scheduled.
	NextDate string `json:"nextDate" bson:"nextDate"`
	Remarks  string `json:"remarks" bson:"remarks"`
	Other    string `json:"other" bson:"other"`

	// ClientAccessCodeHash backs an alternate client login that has no
	// verification endpoint yet. Stored on write, never serialized out.
	ClientAccessCodeHash string `json:"-" bson:"clientAccessCodeHash,omitempty"`

	// History is append-only; entries are never edited or removed through
	// the case endpoints.
	History []HistoryEntry `json:"history" bson:"history"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// HistoryEntry is a point-in-time snapshot of a hearing, recorded as a side
// effect of case create/update.
type HistoryEntry struct {
	Date      string             `json:"date" bson:"date"` // day-precision key (YYYY-MM-DD)
	Status    string             `json:"status" bson:"status"`
	Court     string             `json:"court" bson:"court"`
	Remarks   string             `json:"remarks" bson:"remarks"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	CreatedBy string             `json:"createdBy" bson:"createdBy"`
}
