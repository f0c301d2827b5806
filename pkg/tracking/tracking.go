package tracking

import "net/http"

// Tracking receives storefront events. Implementations must not block the request.
type Tracking interface {
	TrackSession(sessionId int, r *http.Request)
	TrackSearch(sessionId int, search SearchEvent, r *http.Request)
	Close() error
}

// SearchEvent describes one executed product search.
type SearchEvent struct {
	Query           string              `json:"query,omitempty"`
	Selected        map[string][]string `json:"selected,omitempty"`
	Filters         []string            `json:"filters,omitempty"`
	NumberOfResults int64               `json:"noi"`
	Page            int                 `json:"page"`
	Locale          string              `json:"locale,omitempty"`
}

const (
	SessionEvent    uint16 = 0
	SearchEventType uint16 = 1
)
