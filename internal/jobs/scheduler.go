// Package jobs runs the periodic background work of the service.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/middleware"
	"github.com/robfig/cron/v3"
)

const reminderTimeout = 30 * time.Second

// Scheduler runs the pending-approval reminder job on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	reminders  portssvc.ExpenseReminderSvc
	schedule   string
	pendingAge time.Duration
	log        *slog.Logger
}

// NewScheduler creates the scheduler. schedule is a standard five-field cron spec; empty disables reminders.
func NewScheduler(reminders portssvc.ExpenseReminderSvc, schedule string, pendingAge time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		reminders:  reminders,
		schedule:   schedule,
		pendingAge: pendingAge,
		log:        log.With(slog.String("component", "scheduler")),
	}
}

func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.log.Info("Approval reminders disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.remindPending); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", slog.String("reminder_schedule", s.schedule))
	return nil
}

// Stop stops scheduling and returns a context that is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) remindPending() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()
	ctx = middleware.WithLogger(ctx, s.log)

	sent, err := s.reminders.RemindPendingApprovals(ctx, s.pendingAge)
	if err != nil {
		s.log.Error("Reminder run failed", slog.String("error", err.Error()))
		return
	}
	s.log.Debug("Reminder run finished", slog.Int("sent", sent))
}
