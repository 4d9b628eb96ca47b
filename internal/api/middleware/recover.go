package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/gogoanime-api/internal/api/shared"
	"github.com/phrazzld/gogoanime-api/internal/platform/logger"
)

// Recoverer turns a panic in a later handler into the generic 500 reply.
// message is the body sent to the client.
func Recoverer(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.FromContextOrDefault(r.Context(), nil).Error("recovered from panic",
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
					"path", r.URL.Path)

				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, message,
					fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
