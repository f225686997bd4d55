package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daily-tasks/internal/model"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userKey         = "user"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		keyvals := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			s.logger.Error("request", append(keyvals, "errors", c.Errors.String())...)
		default:
			s.logger.Info("request", keyvals...)
		}
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("panic", "request_id", c.GetString(requestIDKey), "err", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": fmt.Sprintf("Server error: %v", recovered)})
	})
}

// withUser resolves the acting user once per request and stores it in the
// gin context; handlers pass it explicitly to the service.
func (s *Server) withUser(c *gin.Context) {
	user, err := s.users.Default(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		c.Abort()
		return
	}
	c.Set(userKey, user)
	c.Next()
}

func currentUser(c *gin.Context) *model.User {
	return c.MustGet(userKey).(*model.User)
}
