package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/kbukum/loginauth/auth/authctx"
	"github.com/kbukum/loginauth/logger"
)

// RequestLogger logs every request with method, path, status and duration.
// Health-check paths are skipped. Headers are never logged, so bearer
// tokens stay out of the logs.
func RequestLogger(log *logger.Logger) Middleware {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithComponent("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHealthEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			subject := ""
			next.ServeHTTP(sw, r.WithContext(withSubjectSink(r.Context(), &subject)))

			fields := map[string]interface{}{
				"method":             r.Method,
				"path":               r.URL.Path,
				logger.FieldStatus:   sw.status,
				logger.FieldDuration: time.Since(start).Milliseconds(),
				"bytes":              sw.written,
			}
			if subject != "" {
				fields[logger.FieldSubject] = subject
			}
			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

func isHealthEndpoint(path string) bool {
	switch path {
	case "/health", "/info":
		return true
	}
	return false
}

// logByStatus logs request fields at the level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}

type subjectSinkKey struct{}

// withSubjectSink lets the inner Authenticate filter report the resolved
// subject back to the outer request logger.
func withSubjectSink(ctx context.Context, dst *string) context.Context {
	return context.WithValue(ctx, subjectSinkKey{}, dst)
}

// reportSubject stores the principal's subject in the sink, if any.
func reportSubject(ctx context.Context, p authctx.Principal) {
	if dst, ok := ctx.Value(subjectSinkKey{}).(*string); ok {
		*dst = p.Subject()
	}
}
