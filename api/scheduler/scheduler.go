package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/databases"
	"github.com/manjunath2605/courtcase-app/notify"
	templates "github.com/manjunath2605/courtcase-app/templates/html"
)

// MailQueue accepts outbound email without blocking the job
type MailQueue interface {
	Enqueue(e notify.Email) bool
}

// Scheduler runs periodic background jobs
type Scheduler struct {
	cron *cron.Cron
	CDB  databases.CaseDatabase
	Mail MailQueue
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cDB databases.CaseDatabase, mail MailQueue) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		CDB:  cDB,
		Mail: mail,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind parties of same-day hearings every morning at 6 AM UTC
	_, err := s.cron.AddFunc("0 6 * * *", s.sendHearingReminders)
	if err != nil {
		zap.S().Errorw("failed to register hearing reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Hearing reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		zap.S().Warn("scheduler stop timed out")
	}
}

// sendHearingReminders emails every party whose case is listed for today
func (s *Scheduler) sendHearingReminders() {
	today := time.Now().UTC().Format("2006-01-02")
	zap.S().Infow("running hearing reminder job", "date", today)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cases, err := s.CDB.Find(ctx, bson.M{"nextDate": today})
	if err != nil {
		zap.S().Errorw("hearing reminder job failed to load cases", "error", err)
		return
	}

	sent := 0
	for i := range cases {
		c := &cases[i]
		if !notify.ValidEmail(c.PartyEmail) {
			continue
		}
		update := templates.HearingUpdate{
			CaseNo:    c.CaseNo,
			PartyName: c.PartyName,
			Court:     c.Court,
			Status:    c.Status,
			Remarks:   c.Remarks,
			NewDate:   c.NextDate,
		}
		s.Mail.Enqueue(notify.Email{
			To:      c.PartyEmail,
			Subject: fmt.Sprintf("Hearing Today - Case %s", c.CaseNo),
			Text:    templates.RenderHearingReminderText(update),
			HTML:    templates.RenderHearingReminder(update),
		})
		sent++
	}
	zap.S().Infow("hearing reminder job finished", "cases", len(cases), "queued", sent)
}
