package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"gidiparts.ng/gidiparts-web/internal/logging"
)

// Logger emits one structured line per request and stores the request-scoped
// logger in the context for handlers to pick up.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With().
				Str("request_id", chimw.GetReqID(r.Context())).
				Logger()
			ctx := logging.WithContext(r.Context(), reqLog)

			rw, ok := w.(*ResponseRecorder)
			if !ok {
				rw = NewResponseRecorder(w)
			}
			next.ServeHTTP(rw, r.WithContext(ctx))

			evt := reqLog.Info()
			if rw.Status() >= 500 {
				evt = reqLog.Error()
			}
			if u := UserFromContext(ctx); u != nil {
				evt = evt.Str("user_id", u.ID)
			}
			evt.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.Status()).
				Int("bytes", rw.Bytes()).
				Dur("duration_ms", time.Since(start)).
				Str("remote_ip", r.RemoteAddr).
				Bool("htmx", IsHTMX(ctx)).
				Msg("request")
		})
	}
}
