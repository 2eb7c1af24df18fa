package templates

import "strings"

// HearingUpdate carries the fields rendered into a hearing-date-change email
type HearingUpdate struct {
	CaseNo    string
	PartyName string
	Court     string
	Status    string
	Remarks   string
	OldDate   string // YYYY-MM-DD or empty
	NewDate   string // YYYY-MM-DD or empty
}

// orDash substitutes "-" for missing values so the email never shows blanks
func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// RenderHearingUpdateText generates the plain-text body for a hearing-date-change email
func RenderHearingUpdateText(u HearingUpdate) string {
	lines := []string{
		"Dear " + orDash(u.PartyName) + ",",
		"",
		"The next hearing date for your case has been updated.",
		"",
		"Case No: " + orDash(u.CaseNo),
		"Court: " + orDash(u.Court),
		"Previous hearing date: " + orDash(u.OldDate),
		"New hearing date: " + orDash(u.NewDate),
		"Status: " + orDash(u.Status),
		"Remarks: " + orDash(u.Remarks),
		"",
		"Please plan to be available on the new date.",
	}
	return strings.Join(lines, "\n")
}

// RenderHearingUpdate generates the HTML body for a hearing-date-change email
func RenderHearingUpdate(u HearingUpdate) string {
	return RenderGenericEmail("Hearing Date Updated", RenderHearingUpdateText(u))
}

// RenderHearingReminderText generates the plain-text body for a same-day
// hearing reminder
func RenderHearingReminderText(u HearingUpdate) string {
	lines := []string{
		"Dear " + orDash(u.PartyName) + ",",
		"",
		"This is a reminder that your case is listed for hearing today.",
		"",
		"Case No: " + orDash(u.CaseNo),
		"Court: " + orDash(u.Court),
		"Hearing date: " + orDash(u.NewDate),
		"Status: " + orDash(u.Status),
		"Remarks: " + orDash(u.Remarks),
	}
	return strings.Join(lines, "\n")
}

// RenderHearingReminder generates the HTML body for a same-day hearing reminder
func RenderHearingReminder(u HearingUpdate) string {
	return RenderGenericEmail("Hearing Today", RenderHearingReminderText(u))
}
