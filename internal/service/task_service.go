package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/datatypes"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

// Advisor supplies advisory text for tasks. Implementations do not fail:
// provider problems come back as placeholder text.
type Advisor interface {
	Guidance(ctx context.Context, title, description string) string
	Suggestions(ctx context.Context, description string) string
	Feedback(ctx context.Context, title, description, reason string) string
}

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	// DueDate is YYYY-MM-DD; empty means today.
	DueDate string
}

// TaskUpdate carries the fields of a partial update. Nil fields are left as
// they are.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Completed   *bool
}

// ReflectAction is what the user decided to do with a task at the end of
// its day.
type ReflectAction string

const (
	ReflectRollover ReflectAction = "rollover"
	ReflectComplete ReflectAction = "complete"
	ReflectDelete   ReflectAction = "delete"
)

// Reflection is the outcome of Reflect.
type Reflection struct {
	Message string
	// Feedback is empty when no reason was given.
	Feedback string
	// Task is nil when the task was deleted.
	Task *model.Task
}

// TaskService implements the task lifecycle: creation, partial updates,
// completion, rollover and deletion, and keeps the history ledger in step
// with every due date change.
type TaskService struct {
	store   *repository.Store
	advisor Advisor
	logger  *log.Logger
	now     func() time.Time
}

// NewTaskService wires the service. now decides what "today" is; nil means
// time.Now.
func NewTaskService(store *repository.Store, advisor Advisor, logger *log.Logger, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		store:   store,
		advisor: advisor,
		logger:  logger.With("component", "tasks"),
		now:     now,
	}
}

func (s *TaskService) today() datatypes.Date {
	return model.DateOf(s.now())
}

// ListTasks returns the user's tasks, restricted to one due date when date
// is not empty.
func (s *TaskService) ListTasks(ctx context.Context, user *model.User, date string) ([]model.Task, error) {
	var due *datatypes.Date
	if strings.TrimSpace(date) != "" {
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		due = &d
	}

	tasks, err := s.store.Tasks.List(ctx, user.ID, due)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalid("Task title is required")
	}

	due := s.today()
	if strings.TrimSpace(input.DueDate) != "" {
		d, err := parseDate(input.DueDate)
		if err != nil {
			return nil, err
		}
		due = d
	}

	task := model.Task{
		UserID:      user.ID,
		Title:       title,
		Description: input.Description,
		DueDate:     due,
		AIGuidance:  s.advisor.Guidance(ctx, title, input.Description),
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Tasks.Create(ctx, &task); err != nil {
			return err
		}
		return tx.History.Append(ctx, &model.TaskHistory{TaskID: task.ID, DueDate: due})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created", "id", task.ID, "due", model.FormatDate(due))
	return &task, nil
}

// GetTask returns the task with its history, oldest episode first.
func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.store.Tasks.FindWithHistory(ctx, user.ID, taskID)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// UpdateTask applies the fields present in upd. A due date change opens a
// new history episode carrying the task's completed flag; a completed change
// only touches the current episode.
func (s *TaskService) UpdateTask(ctx context.Context, user *model.User, taskID uint, upd TaskUpdate) (*model.Task, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, invalid("Task title cannot be empty")
	}
	var newDue *datatypes.Date
	if upd.DueDate != nil {
		d, err := parseDate(*upd.DueDate)
		if err != nil {
			return nil, err
		}
		newDue = &d
	}

	task, err := s.store.Tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, notFound(err)
	}

	if upd.Title != nil {
		task.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil && *upd.Description != task.Description {
		task.Description = *upd.Description
		task.AIGuidance = s.advisor.Guidance(ctx, task.Title, task.Description)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if newDue != nil && !model.SameDate(*newDue, task.DueDate) {
			if err := s.moveDueDate(ctx, tx, task, *newDue, task.Completed); err != nil {
				return err
			}
		}
		if upd.Completed != nil {
			if err := s.setCompleted(ctx, tx, task, *upd.Completed, false); err != nil {
				return err
			}
		}
		return tx.Tasks.Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "id", task.ID, "due", model.FormatDate(task.DueDate), "completed", task.Completed)
	return task, nil
}

// DeleteTask removes the task and its whole history.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) error {
	task, err := s.store.Tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return notFound(err)
	}

	if err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return deleteTask(ctx, tx, task.ID)
	}); err != nil {
		return err
	}

	s.logger.Info("task deleted", "id", task.ID)
	return nil
}

// SetIncompleteReason stores why the task slipped, on the task and on its
// current episode, and returns feedback text for it. The feedback is not
// persisted.
func (s *TaskService) SetIncompleteReason(ctx context.Context, user *model.User, taskID uint, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", invalid("Reason is required")
	}

	task, err := s.store.Tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return "", notFound(err)
	}

	if err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := recordReason(ctx, tx, task, reason); err != nil {
			return err
		}
		return tx.Tasks.Save(ctx, task)
	}); err != nil {
		return "", err
	}

	return s.advisor.Feedback(ctx, task.Title, task.Description, reason), nil
}

// Feedback returns feedback text for a reason without storing anything.
func (s *TaskService) Feedback(ctx context.Context, user *model.User, taskID uint, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", invalid("Reason is required")
	}

	task, err := s.store.Tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return "", notFound(err)
	}
	return s.advisor.Feedback(ctx, task.Title, task.Description, reason), nil
}

// RolloverAll moves every open task due yesterday to today and returns how
// many were moved. Running it again the same day finds nothing to move.
func (s *TaskService) RolloverAll(ctx context.Context, user *model.User) (int, error) {
	today := s.today()
	yesterday := model.AddDays(today, -1)

	var count int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		tasks, err := tx.Tasks.ListDueOn(ctx, user.ID, yesterday, false)
		if err != nil {
			return fmt.Errorf("list tasks to roll over: %w", err)
		}
		for i := range tasks {
			task := &tasks[i]
			if err := s.moveDueDate(ctx, tx, task, today, false); err != nil {
				return err
			}
			if err := tx.Tasks.Save(ctx, task); err != nil {
				return err
			}
		}
		count = len(tasks)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("rolled over tasks", "user", user.ID, "count", count, "to", model.FormatDate(today))
	return count, nil
}

// RolloverOne moves a task to tomorrow, recording reason on the episode it
// leaves when one is given.
func (s *TaskService) RolloverOne(ctx context.Context, user *model.User, taskID uint, reason string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, notFound(err)
	}
	reason = strings.TrimSpace(reason)

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if reason != "" {
			if err := recordReason(ctx, tx, task, reason); err != nil {
				return err
			}
		}
		if err := s.rollToTomorrow(ctx, tx, task); err != nil {
			return err
		}
		return tx.Tasks.Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task rolled over", "id", task.ID, "to", model.FormatDate(task.DueDate))
	return task, nil
}

// Reflect applies the user's end-of-day decision for a task. The reason, if
// any, is recorded before the action runs and triggers a feedback request.
func (s *TaskService) Reflect(ctx context.Context, user *model.User, taskID uint, action ReflectAction, reason string) (*Reflection, error) {
	switch action {
	case ReflectRollover, ReflectComplete, ReflectDelete:
	case "":
		return nil, invalid("Action is required")
	default:
		return nil, invalid("Invalid action %q", string(action))
	}

	task, err := s.store.Tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, notFound(err)
	}
	reason = strings.TrimSpace(reason)

	result := &Reflection{Task: task}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if reason != "" {
			if err := recordReason(ctx, tx, task, reason); err != nil {
				return err
			}
		}

		switch action {
		case ReflectRollover:
			if err := s.rollToTomorrow(ctx, tx, task); err != nil {
				return err
			}
			result.Message = "Task rolled over to tomorrow"
		case ReflectComplete:
			if err := s.setCompleted(ctx, tx, task, true, true); err != nil {
				return err
			}
			result.Message = "Task marked as completed"
		case ReflectDelete:
			result.Message = "Task deleted"
			result.Task = nil
			return deleteTask(ctx, tx, task.ID)
		}
		return tx.Tasks.Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task reflected", "id", task.ID, "action", string(action))
	if reason != "" {
		result.Feedback = s.advisor.Feedback(ctx, task.Title, task.Description, reason)
	}
	return result, nil
}

// Suggest returns suggestions for a task that may not exist yet.
func (s *TaskService) Suggest(ctx context.Context, description string) string {
	return s.advisor.Suggestions(ctx, description)
}

// moveDueDate sets the task's due date and opens a new history episode.
func (s *TaskService) moveDueDate(ctx context.Context, tx *repository.Store, task *model.Task, due datatypes.Date, completed bool) error {
	task.DueDate = due
	return tx.History.Append(ctx, &model.TaskHistory{
		TaskID:    task.ID,
		DueDate:   due,
		Completed: completed,
	})
}

// rollToTomorrow reopens the task on tomorrow's date. A task already due
// tomorrow keeps its episode.
func (s *TaskService) rollToTomorrow(ctx context.Context, tx *repository.Store, task *model.Task) error {
	tomorrow := model.AddDays(s.today(), 1)
	if model.SameDate(task.DueDate, tomorrow) {
		return s.setCompleted(ctx, tx, task, false, false)
	}
	task.Completed = false
	return s.moveDueDate(ctx, tx, task, tomorrow, false)
}

// setCompleted mirrors the flag onto the current episode. The completion
// date is stamped on a false to true transition, or when restamp is set and
// the episode has none, and cleared when the flag goes back to false.
func (s *TaskService) setCompleted(ctx context.Context, tx *repository.Store, task *model.Task, completed, restamp bool) error {
	was := task.Completed
	task.Completed = completed

	current, err := tx.History.Current(ctx, task.ID, task.DueDate)
	if err != nil {
		return err
	}
	if current == nil {
		s.logger.Warn("task has no current history row", "id", task.ID, "due", model.FormatDate(task.DueDate))
		return nil
	}

	current.Completed = completed
	switch {
	case completed && (!was || (restamp && current.CompletionDate == nil)):
		now := s.now()
		current.CompletionDate = &now
	case !completed:
		current.CompletionDate = nil
	}
	return tx.History.Save(ctx, current)
}

func recordReason(ctx context.Context, tx *repository.Store, task *model.Task, reason string) error {
	task.IncompleteReason = reason
	current, err := tx.History.Current(ctx, task.ID, task.DueDate)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	current.IncompleteReason = reason
	return tx.History.Save(ctx, current)
}

func deleteTask(ctx context.Context, tx *repository.Store, taskID uint) error {
	if err := tx.History.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	return tx.Tasks.Delete(ctx, taskID)
}

func parseDate(raw string) (datatypes.Date, error) {
	d, err := model.ParseDate(raw)
	if err != nil {
		return datatypes.Date{}, invalid("Invalid date format. Use YYYY-MM-DD")
	}
	return d, nil
}
