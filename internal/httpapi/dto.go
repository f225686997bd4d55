package httpapi

import (
	"time"

	"daily-tasks/internal/model"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Completed   *bool   `json:"completed"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type reflectionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type suggestionsRequest struct {
	Description string `json:"description"`
}

type taskResponse struct {
	ID               uint              `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	DueDate          string            `json:"due_date"`
	Completed        bool              `json:"completed"`
	AIGuidance       string            `json:"ai_guidance"`
	IncompleteReason string            `json:"incomplete_reason"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	UserID           uint              `json:"user_id"`
	History          []historyResponse `json:"history,omitempty"`
}

type historyResponse struct {
	ID               uint       `json:"id"`
	TaskID           uint       `json:"task_id"`
	DueDate          string     `json:"due_date"`
	Completed        bool       `json:"completed"`
	CompletionDate   *time.Time `json:"completion_date"`
	IncompleteReason string     `json:"incomplete_reason"`
}

func toTaskResponse(task *model.Task) taskResponse {
	resp := taskResponse{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		DueDate:          model.FormatDate(task.DueDate),
		Completed:        task.Completed,
		AIGuidance:       task.AIGuidance,
		IncompleteReason: task.IncompleteReason,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
		UserID:           task.UserID,
	}
	for _, h := range task.History {
		resp.History = append(resp.History, historyResponse{
			ID:               h.ID,
			TaskID:           h.TaskID,
			DueDate:          model.FormatDate(h.DueDate),
			Completed:        h.Completed,
			CompletionDate:   h.CompletionDate,
			IncompleteReason: h.IncompleteReason,
		})
	}
	return resp
}

func toTaskResponses(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return out
}
