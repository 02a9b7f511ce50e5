// Package errors provides HTTP error-handling middleware for the RAPTR
// optimization service.
package errors

import (
	"net/http"
	"runtime/debug"

	"github.com/duskfell/RAPTR/internal/logging"
)

// RecoveryMiddleware returns a middleware that recovers from panics in
// handlers, logs the stack, and returns a 500. The core's contract
// violations (mismatched population lengths and the like) panic on
// purpose, so this is the boundary that turns a buggy request into a
// diagnosable response instead of a dead process.
func RecoveryMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					fields := map[string]interface{}{
						"error": rec,
						"stack": string(debug.Stack()),
					}
					if r != nil {
						fields["method"] = r.Method
						fields["path"] = r.URL.Path
					}
					logger.Error("Recovered from panic", fields)

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
