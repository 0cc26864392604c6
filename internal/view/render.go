package view

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"go.uber.org/zap"
)

const (
	// RetryAfterSeconds is what a loading document asks the client to wait
	RetryAfterSeconds = "1"
	// StateHeader names the state of the rendered document
	StateHeader = "X-View-State"
)

// Document is the JSON body of every view response
type Document struct {
	State    string `json:"state"`
	Data     any    `json:"data,omitempty"`
	Empty    bool   `json:"empty,omitempty"`
	Error    string `json:"error,omitempty"`
	Resource string `json:"resource,omitempty"`
}

// Render writes state as a view document
func Render(c *gin.Context, view string, s State) {
	status, doc := document(c, s)
	metrics.ViewRenders.WithLabelValues(view, doc.State).Inc()
	c.Header(StateHeader, doc.State)
	c.JSON(status, doc)
}

func document(c *gin.Context, s State) (int, Document) {
	switch st := s.(type) {
	case Loading:
		c.Header("Retry-After", RetryAfterSeconds)
		return http.StatusAccepted, Document{State: st.Name()}
	case Unauthorized:
		return http.StatusUnauthorized, Document{State: st.Name(), Error: "Access restricted"}
	case NotFound:
		return http.StatusNotFound, Document{State: st.Name(), Error: "Not found", Resource: st.Resource}
	case Unavailable:
		if st.Err != nil {
			_ = c.Error(st.Err) //nolint:errcheck
		}
		return http.StatusServiceUnavailable, Document{State: st.Name(), Error: "Service unavailable"}
	case readyState:
		data, empty := st.payload()
		return http.StatusOK, Document{State: s.Name(), Data: data, Empty: empty}
	default:
		logger.Error("Unknown view state", zap.String("type", fmt.Sprintf("%T", s)))
		return http.StatusInternalServerError, Document{State: "error", Error: "Internal server error"}
	}
}
