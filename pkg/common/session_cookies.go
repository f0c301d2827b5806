package common

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SessionTracker is told about every new session.
type SessionTracker interface {
	TrackSession(sessionId int, r *http.Request)
}

const sessionCookie = "sid"

func itoa(i int) string {
	return strconv.Itoa(i)
}

func generateSessionId() int {
	return int(time.Now().UnixNano() & 0x7fffffff)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    itoa(sessionId),
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id of the request, starting and
// tracking a new session when the cookie is missing or broken.
func HandleSessionCookie(trk SessionTracker, w http.ResponseWriter, r *http.Request) int {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := strconv.Atoi(c.Value); err == nil {
			return id
		}
	}
	sessionId := generateSessionId()
	if trk != nil {
		trk.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
