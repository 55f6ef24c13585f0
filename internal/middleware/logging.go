package middleware

import (
	"net/http"
	"strings"

	"agora/backend/internal/logging"
)

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// Logging dumps request headers at debug level; only mounted outside production
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string, len(r.Header))
		for name, vals := range r.Header {
			if redactedHeaders[name] {
				headers[name] = "[redacted]"
				continue
			}
			headers[name] = strings.Join(vals, ",")
		}

		logging.Debug("HTTP request received",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"url", r.URL.String(),
			"headers", headers,
		)
		next.ServeHTTP(w, r)
	})
}
