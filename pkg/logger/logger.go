// backend/pkg/logger/logger.go
package logger

import (
    "net/http"
    "time"

    "go.uber.org/zap"
)

func New() (*zap.Logger, error) {
    return zap.NewProduction()
}

type statusWriter struct {
    http.ResponseWriter
    status int
}

func (w *statusWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            start := time.Now()
            sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
            next.ServeHTTP(sw, r)
            logger.Info("request",
                zap.String("method", r.Method),
                zap.String("path", r.URL.Path),
                zap.Int("status", sw.status),
                zap.Duration("latency", time.Since(start)),
            )
        })
    }
}
