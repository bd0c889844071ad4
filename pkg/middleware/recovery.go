package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/pagemark/bookreview/pkg/httputil"
)

// Recovery converts handler panics into a 500 response instead of killing
// the connection. The stack is logged; the client only sees the generic
// error body.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorBody{
						Code:    "INTERNAL_ERROR",
						Message: "an internal error occurred",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
