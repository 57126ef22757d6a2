package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/GeorgiM13/professional-house-manager-sub000/pkg/utils"
)

// PanicRecovery turns a handler panic into a 500 response instead of letting
// one bad generation or payment request kill the server. The stack goes to
// the log under the [Recovery] prefix; the client only sees a generic error.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
