package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"go.uber.org/zap"
)

type LogsHandler struct {
	out io.Writer
	mu  sync.Mutex
}

type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string         `json:"message" binding:"required,max=2000"`
	Context   map[string]any `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,max=100,dive"`
}

// NewLogsHandler writes frontend logs to a rotated frontend.log in logDir.
// Without a directory they go to the process logger instead.
func NewLogsHandler(logDir string) *LogsHandler {
	h := &LogsHandler{}
	if logDir != "" {
		h.out = logger.NewRotatingWriter(logDir, "frontend.log")
	}
	return h
}

func (h *LogsHandler) ReceiveFrontendLogs(c *gin.Context) {
	var req LogBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	if len(req.Logs) == 0 {
		respondError(c, http.StatusBadRequest, "No logs provided", nil)
		return
	}

	if err := h.write(req.Logs); err != nil {
		logger.Error("Failed to write frontend logs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	metrics.FrontendLogsReceived.Add(float64(len(req.Logs)))
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *LogsHandler) write(entries []LogEntry) error {
	if h.out == nil {
		for _, e := range entries {
			logger.Info(e.Message,
				zap.String("source", "frontend"),
				zap.String("frontend_level", e.Level),
				zap.String("frontend_ts", e.Timestamp),
				zap.Any("context", e.Context))
		}
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	encoder := json.NewEncoder(h.out)
	for _, e := range entries {
		line := map[string]any{
			"ts":      e.Timestamp,
			"level":   e.Level,
			"msg":     e.Message,
			"service": "web-frontend",
		}
		for k, v := range e.Context {
			if _, reserved := line[k]; !reserved {
				line[k] = v
			}
		}
		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}
	return nil
}
