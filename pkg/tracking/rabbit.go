package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingPrefix = "global"

type BaseEvent struct {
	EventId   string    `json:"event_id"`
	SessionId int       `json:"session_id"`
	Country   string    `json:"country,omitempty"`
	Context   string    `json:"context,omitempty"`
	Event     uint16    `json:"event"`
	Timestamp time.Time `json:"ts"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type SearchEventData struct {
	*BaseEvent
	SearchEvent
	Referer string `json:"referer,omitempty"`
}

// RabbitTracking publishes events to the global tracking exchange. Events are
// queued and sent in batches from a background goroutine.
type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
	publish    func(data any) error
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, trackingPrefix, messaging.Tracking); err != nil {
		conn.Close()
		return nil, err
	}
	rt := newTracking(country, func(data any) error {
		return messaging.SendChange(conn, trackingPrefix, messaging.Tracking, data)
	})
	rt.connection = conn
	return rt, nil
}

func newTracking(country string, publish func(any) error) *RabbitTracking {
	rt := &RabbitTracking{country: country, publish: publish}
	rt.queue = common.NewQueueHandler(rt.sendAll, 50, time.Second)
	return rt
}

func (rt *RabbitTracking) sendAll(events []any) {
	for _, e := range events {
		if err := rt.publish(e); err != nil {
			log.Printf("failed to send tracking event: %v", err)
		}
	}
}

// Close flushes queued events and closes the connection.
func (rt *RabbitTracking) Close() error {
	rt.queue.Close()
	if rt.connection == nil {
		return nil
	}
	return rt.connection.Close()
}

func (rt *RabbitTracking) base(sessionId int, event uint16) *BaseEvent {
	return &BaseEvent{
		EventId:   uuid.NewString(),
		SessionId: sessionId,
		Country:   rt.country,
		Context:   "b2c",
		Event:     event,
		Timestamp: time.Now().UTC(),
	}
}

func clientIp(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func (rt *RabbitTracking) TrackSession(sessionId int, r *http.Request) {
	rt.queue.Add(&Session{
		BaseEvent:    rt.base(sessionId, SessionEvent),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

func (rt *RabbitTracking) TrackSearch(sessionId int, search SearchEvent, r *http.Request) {
	rt.queue.Add(&SearchEventData{
		BaseEvent:   rt.base(sessionId, SearchEventType),
		SearchEvent: search,
		Referer:     r.Header.Get("Referer"),
	})
}
