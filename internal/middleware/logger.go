package middleware

import (
	"context"
	"log"
)

// Logger scopes error logging to the request id set by RequestID.
type Logger struct {
	requestID string
}

func NewLogger(ctx context.Context) *Logger {
	requestID := "unknown"
	if rid, ok := ctx.Value(requestIDKey).(string); ok && rid != "" {
		requestID = rid
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}
