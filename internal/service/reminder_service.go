package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	taskRepo *repository.TaskRepository
}

func NewReminderService(taskRepo *repository.TaskRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo}
}

// DailySummary renders the user's day as Telegram-flavoured HTML: what is
// due today, what is already done and what is overdue.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User, now time.Time, rolledOver int) (string, error) {
	today := model.DateOf(now)

	dueToday, err := s.taskRepo.List(ctx, user.ID, &today)
	if err != nil {
		return "", err
	}
	overdue, err := s.taskRepo.ListOverdue(ctx, user.ID, today)
	if err != nil {
		return "", err
	}

	var pending, done []model.Task
	for _, task := range dueToday {
		if task.Completed {
			done = append(done, task)
		} else {
			pending = append(pending, task)
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n", model.FormatDate(today)))
	if rolledOver > 0 {
		builder.WriteString(fmt.Sprintf("↪️ %d task(s) rolled over from yesterday\n", rolledOver))
	}

	builder.WriteString("\n🔥 <b>Due today</b>\n")
	if len(pending) == 0 {
		builder.WriteString("- nothing open\n")
	} else {
		for _, task := range pending {
			builder.WriteString(formatTask(task, iconDefault))
		}
	}

	if len(overdue) > 0 {
		builder.WriteString("\n⚠️ <b>Overdue</b>\n")
		for _, task := range overdue {
			builder.WriteString(formatTask(task, iconOverdue))
		}
	}

	builder.WriteString(fmt.Sprintf("\n✅ Done today: %d/%d\n", len(done), len(dueToday)))

	return strings.TrimSpace(builder.String()), nil
}

const (
	iconDefault = "🟢"
	iconOverdue = "⚠️"
)

func formatTask(task model.Task, icon string) string {
	var sb strings.Builder

	title := html.EscapeString(strings.TrimSpace(task.Title))
	sb.WriteString(fmt.Sprintf("%s %s", icon, title))

	if icon == iconOverdue {
		sb.WriteString(fmt.Sprintf("\n   ⏰ due %s", model.FormatDate(task.DueDate)))
	}

	if task.IncompleteReason != "" {
		sb.WriteString(fmt.Sprintf("\n   💬 %s", html.EscapeString(strings.TrimSpace(task.IncompleteReason))))
	}

	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}
