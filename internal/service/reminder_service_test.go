package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "Write <report>", "2024-01-11")
	done := f.create(t, "Stretch", "2024-01-11")
	_, err := f.svc.UpdateTask(ctx, f.user, done.ID, TaskUpdate{Completed: ptr(true)})
	require.NoError(t, err)
	late := f.create(t, "Pay rent", "2024-01-08")
	_, err = f.svc.SetIncompleteReason(ctx, f.user, late.ID, "forgot")
	require.NoError(t, err)
	f.create(t, "Next week", "2024-01-18")

	reminders := NewReminderService(f.store.Tasks)
	text, err := reminders.DailySummary(ctx, *f.user, f.now, 2)
	require.NoError(t, err)

	assert.Contains(t, text, "2024-01-11")
	assert.Contains(t, text, "2 task(s) rolled over")
	assert.Contains(t, text, "Write &lt;report&gt;")
	assert.NotContains(t, text, "Stretch")
	assert.Contains(t, text, "Pay rent")
	assert.Contains(t, text, "due 2024-01-08")
	assert.Contains(t, text, "forgot")
	assert.NotContains(t, text, "Next week")
	assert.Contains(t, text, "Done today: 1/2")
}

func TestDailySummaryEmptyDay(t *testing.T) {
	f := newFixture(t)

	text, err := NewReminderService(f.store.Tasks).DailySummary(context.Background(), *f.user, f.now, 0)
	require.NoError(t, err)

	assert.Contains(t, text, "nothing open")
	assert.NotContains(t, text, "rolled over")
	assert.NotContains(t, text, "Overdue")
}
