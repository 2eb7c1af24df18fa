package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/manjunath2605/courtcase-app/databases/mocks"
	"github.com/manjunath2605/courtcase-app/models"
	"github.com/manjunath2605/courtcase-app/notify"
)

type fakeQueue struct {
	emails []notify.Email
}

func (f *fakeQueue) Enqueue(e notify.Email) bool {
	f.emails = append(f.emails, e)
	return true
}

func TestSendHearingRemindersSkipsBadEmails(t *testing.T) {
	cdb := mocks.NewCaseDatabase(t)
	cdb.On("Find", mock.Anything, mock.Anything).Return([]models.Case{
		{CaseNo: "CR-1", PartyName: "A", PartyEmail: "party@example.com", NextDate: "2024-01-10"},
		{CaseNo: "CR-2", PartyName: "B", PartyEmail: "", NextDate: "2024-01-10"},
		{CaseNo: "CR-3", PartyName: "C", PartyEmail: "not-an-email", NextDate: "2024-01-10"},
	}, nil)

	queue := &fakeQueue{}
	s := NewScheduler(cdb, queue)
	s.sendHearingReminders()

	if assert.Len(t, queue.emails, 1) {
		assert.Equal(t, "party@example.com", queue.emails[0].To)
		assert.Contains(t, queue.emails[0].Subject, "CR-1")
	}
}

func TestSendHearingRemindersFindError(t *testing.T) {
	cdb := mocks.NewCaseDatabase(t)
	cdb.On("Find", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	queue := &fakeQueue{}
	s := NewScheduler(cdb, queue)
	s.sendHearingReminders()

	assert.Empty(t, queue.emails)
}
