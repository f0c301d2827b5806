package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
)

// StatusError is returned by json handlers to pick the response status.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func NewStatusError(code int, err error) *StatusError {
	return &StatusError{Code: code, Err: err}
}

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error

// JsonHandler handles CORS preflight, the session cookie and the error
// response. fn must not write anything before it returns an error.
func JsonHandler(trk SessionTracker, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")

		err := fn(w, r, sessionId, jsoncompat.NewEncoder(w))
		if err != nil {
			log.Printf("error handling %s: %v", r.URL.Path, err)
			code := http.StatusInternalServerError
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				code = statusErr.Code
			}
			http.Error(w, http.StatusText(code), code)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}

// PublicCache marks a response as cacheable by shared caches. Responses
// that set a cookie are only cacheable by the browser.
func PublicCache(w http.ResponseWriter, maxAge int) {
	scope := "public"
	if w.Header().Get("Set-Cookie") != "" {
		scope = "private"
	}
	w.Header().Set("Cache-Control", scope+", max-age="+itoa(maxAge)+", stale-while-revalidate=120")
	w.Header().Set("Age", "0")
}
