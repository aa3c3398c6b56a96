package middleware

import (
	"net/http"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// DebugOnly answers 404 outside the environments where debug tools may run.
// It must come first in the chain so nothing downstream, sign-in and
// session writes included, runs for a closed gate.
func DebugOnly(env domain.Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !env.DebugEnabled() {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			})
		}
		return next
	}
}
