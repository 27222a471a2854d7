package errors

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure and shows the visitor the generic
// server error page. The cause never reaches the response.
type ErrorLogger struct {
	log   *zap.Logger
	pages *Handler
}

// NewErrorLogger builds an ErrorLogger that renders through pages.
func NewErrorLogger(logger *zap.Logger, pages *Handler) *ErrorLogger {
	return &ErrorLogger{log: logger, pages: pages}
}

// ServerError logs msg with err and renders the 500 page.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	e.log.Error(msg, fields...)
	e.pages.ServerError(w, r)
}

// Recover turns a panic in a downstream handler into a logged 500 page.
func (e *ErrorLogger) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			e.ServerError(w, r, "handler panic", fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}
