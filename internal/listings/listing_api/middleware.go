package listing_api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"ms-directory/internal/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger records every request through the API log category.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.LogAPI(r.Method, r.URL.Path, status, time.Since(start))
		})
	}
}

// Recoverer turns a panic into the generic server error page.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Logger.Error("PANIC", fmt.Sprintf("%s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack()))
				h.errorPage(w, r, http.StatusInternalServerError, "Server Error", "Something went wrong. Please try again.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
