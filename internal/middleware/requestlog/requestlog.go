// Package requestlog provides middleware for request tracing and logging
package requestlog

import (
	"crypto/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/gravadigital/community-api/internal/logger"
)

const (
	// HeaderRequestID carries the request id in and out
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID is the gin context key holding the request id
	ContextRequestID = "request_id"

	maxInboundIDLength = 64
)

// New returns a middleware that tags each request with an id and logs its
// start and completion. An inbound X-Request-ID is reused when present.
func New() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.HTTP()
		startTime := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxInboundIDLength {
			requestID = NewRequestID(startTime)
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		log.Debug("Request started",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logLevel := log.Info
		if status >= 500 {
			logLevel = log.Error
		} else if status >= 400 {
			logLevel = log.Warn
		}

		logLevel("Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"size", c.Writer.Size(),
		)
	}
}

// NewRequestID returns a ULID for now. ULIDs sort by creation time, which
// keeps log lines for one request easy to find.
func NewRequestID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
