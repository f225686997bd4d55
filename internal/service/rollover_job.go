package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"daily-tasks/internal/model"
)

// Notifier delivers a rendered message to the user.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// RolloverJob is the daily background run: roll yesterday's open tasks
// forward for every user and send each user a summary of the new day.
type RolloverJob struct {
	users     *UserService
	tasks     *TaskService
	reminders *ReminderService
	notifier  Notifier
	logger    *log.Logger
	now       func() time.Time
}

func NewRolloverJob(users *UserService, tasks *TaskService, reminders *ReminderService, notifier Notifier, logger *log.Logger, now func() time.Time) *RolloverJob {
	if now == nil {
		now = time.Now
	}
	return &RolloverJob{
		users:     users,
		tasks:     tasks,
		reminders: reminders,
		notifier:  notifier,
		logger:    logger.With("component", "rollover-job"),
		now:       now,
	}
}

// Run rolls over every user's tasks and returns the total moved. Summary
// delivery failures are logged and do not fail the run.
func (j *RolloverJob) Run(ctx context.Context) (int, error) {
	users, err := j.users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	total := 0
	var errs []error
	for i := range users {
		user := &users[i]
		count, err := j.tasks.RolloverAll(ctx, user)
		if err != nil {
			errs = append(errs, fmt.Errorf("rollover user %d: %w", user.ID, err))
			continue
		}
		total += count
		j.notify(ctx, *user, count)
	}
	return total, errors.Join(errs...)
}

// Report sends the summary without rolling anything over.
func (j *RolloverJob) Report(ctx context.Context) error {
	users, err := j.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, user := range users {
		j.notify(ctx, user, 0)
	}
	return nil
}

func (j *RolloverJob) notify(ctx context.Context, user model.User, rolledOver int) {
	if j.notifier == nil {
		return
	}
	summary, err := j.reminders.DailySummary(ctx, user, j.now(), rolledOver)
	if err != nil {
		j.logger.Error("build summary", "user", user.ID, "err", err)
		return
	}
	if err := j.notifier.Notify(ctx, summary); err != nil {
		j.logger.Error("send summary", "user", user.ID, "err", err)
	}
}
