package handlers

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manjunath2605/courtcase-app/models"
)

// hearingSnapshot captures the four hearing-relevant fields of a case for
// before/after comparison.
type hearingSnapshot struct {
	NextDate string
	Status   string
	Court    string
	Remarks  string
}

func snapshotOf(c *models.Case) hearingSnapshot {
	return hearingSnapshot{
		NextDate: c.NextDate,
		Status:   c.Status,
		Court:    c.Court,
		Remarks:  c.Remarks,
	}
}

// dateKeyLayouts are the accepted inbound date formats. Anything else
// normalizes to the empty key, same as a missing date.
var dateKeyLayouts = []string{"2006-01-02", time.RFC3339}

// normalizeDateKey reduces a date value to its calendar day (YYYY-MM-DD).
// Two timestamps on the same day compare equal regardless of time of day.
func normalizeDateKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range dateKeyLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format("2006-01-02")
		}
	}
	return ""
}

// hearingChanged reports whether any hearing-relevant field differs between
// the two snapshots. Dates compare by calendar day.
func hearingChanged(before, after hearingSnapshot) bool {
	return normalizeDateKey(before.NextDate) != normalizeDateKey(after.NextDate) ||
		before.Status != after.Status ||
		before.Court != after.Court ||
		before.Remarks != after.Remarks
}

// nextDateChanged reports whether the hearing date key itself differs. This
// alone gates the party notification.
func nextDateChanged(before, after hearingSnapshot) bool {
	return normalizeDateKey(before.NextDate) != normalizeDateKey(after.NextDate)
}

// buildHistoryEntry builds the candidate history entry from the case's
// current state, or nil when the case has no hearing date or no status.
func buildHistoryEntry(c *models.Case, actorID string) *models.HistoryEntry {
	if c.Status == "" {
		return nil
	}
	dateKey := normalizeDateKey(c.NextDate)
	if dateKey == "" {
		return nil
	}
	if actorID == "" {
		actorID = "System"
	}
	return &models.HistoryEntry{
		Date:      dateKey,
		Status:    c.Status,
		Court:     c.Court,
		Remarks:   c.Remarks,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
		CreatedBy: actorID,
	}
}

// sameHistoryEntry compares two entries on date key, status, court and
// remarks. A nil entry compares as all-empty.
func sameHistoryEntry(a, b *models.HistoryEntry) bool {
	var av, bv models.HistoryEntry
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return normalizeDateKey(av.Date) == normalizeDateKey(bv.Date) &&
		av.Status == bv.Status &&
		av.Court == bv.Court &&
		av.Remarks == bv.Remarks
}

// applyHistoryAppend decides whether the candidate entry extends the history
// and returns the resulting sequence. History only ever grows: an entry is
// appended when a candidate exists, the hearing changed (or history is empty,
// the bootstrap case), and the candidate is not identical to the latest
// entry. On create, callers pass changed=true since everything is new.
func applyHistoryAppend(history []models.HistoryEntry, entry *models.HistoryEntry, changed bool) []models.HistoryEntry {
	if entry == nil {
		return history
	}
	bootstrap := len(history) == 0
	if !changed && !bootstrap {
		return history
	}

	var latest *models.HistoryEntry
	if len(history) > 0 {
		latest = &history[len(history)-1]
	}
	if sameHistoryEntry(latest, entry) {
		return history
	}
	return append(history, *entry)
}
