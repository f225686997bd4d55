package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"daily-tasks/internal/service"
)

const minSuggestionInput = 5

const shortDescriptionSuggestions = "• Please provide a more detailed description for better suggestions\n" +
	"• Consider what you want to accomplish with this task\n" +
	"• Think about any deadlines or constraints"

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.health.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleList(c *gin.Context) {
	tasks, err := s.tasks.ListTasks(c.Request.Context(), currentUser(c), c.Query("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": toTaskResponses(tasks)})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req, false) {
		return
	}

	task, err := s.tasks.CreateTask(c.Request.Context(), currentUser(c), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": toTaskResponse(task)})
}

func (s *Server) handleGet(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := s.tasks.GetTask(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": toTaskResponse(task)})
}

func (s *Server) handleUpdate(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if !bindJSON(c, &req, false) {
		return
	}

	task, err := s.tasks.UpdateTask(c.Request.Context(), currentUser(c), id, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": toTaskResponse(task)})
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := s.tasks.DeleteTask(c.Request.Context(), currentUser(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (s *Server) handleIncompleteReason(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !bindJSON(c, &req, false) {
		return
	}

	feedback, err := s.tasks.SetIncompleteReason(c.Request.Context(), currentUser(c), id, req.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Incomplete reason added successfully", "ai_feedback": feedback})
}

func (s *Server) handleFeedback(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !bindJSON(c, &req, false) {
		return
	}

	feedback, err := s.tasks.Feedback(c.Request.Context(), currentUser(c), id, req.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ai_feedback": feedback})
}

func (s *Server) handleRolloverAll(c *gin.Context) {
	count, err := s.tasks.RolloverAll(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully rolled over %d tasks", count),
		"count":   count,
	})
}

func (s *Server) handleRolloverOne(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !bindJSON(c, &req, true) {
		return
	}

	task, err := s.tasks.RolloverOne(c.Request.Context(), currentUser(c), id, req.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task rolled over to tomorrow", "task": toTaskResponse(task)})
}

func (s *Server) handleReflection(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req reflectionRequest
	if !bindJSON(c, &req, false) {
		return
	}

	result, err := s.tasks.Reflect(c.Request.Context(), currentUser(c), id, service.ReflectAction(req.Action), req.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}

	var feedback *string
	if result.Feedback != "" {
		feedback = &result.Feedback
	}
	c.JSON(http.StatusOK, gin.H{"message": result.Message, "ai_feedback": feedback})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	var req suggestionsRequest
	if !bindJSON(c, &req, true) {
		return
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Description)) < minSuggestionInput {
		c.JSON(http.StatusOK, gin.H{"suggestions": shortDescriptionSuggestions})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": s.tasks.Suggest(c.Request.Context(), req.Description)})
}

// fail maps service errors onto status codes.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Msg})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error: " + err.Error()})
	}
}

// taskID parses the :id path segment. Anything that is not a positive
// integer cannot name a task, so it is reported as not found.
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst. An empty body is accepted only
// when optional is set.
func bindJSON(c *gin.Context, dst any, optional bool) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if optional && errors.Is(err, io.EOF) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
	return false
}
