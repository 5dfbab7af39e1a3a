// Package tracking queries carrier APIs and normalizes their response
// shapes into one Result type. Failures never surface as Go errors:
// they are folded into Result.IsError, which callers must check.
package tracking

import (
	"context"
	"net/http"
	"sort"
	"time"
)

type Event struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
}

type Result struct {
	TrackingNumber string  `json:"tracking_number"`
	Status         string  `json:"status"`
	IsDelivered    bool    `json:"is_delivered"`
	Events         []Event `json:"events"`
	IsError        bool    `json:"is_error"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

type Tracker interface {
	Track(ctx context.Context, trackingNumber string) Result
}

// ForCarrier picks a tracker by carrier name. Envia is the default.
func ForCarrier(name string) Tracker {
	if name == "correios" {
		return NewCorreios()
	}
	return NewEnvia()
}

func errorResult(trackingNumber, msg string) Result {
	return Result{
		TrackingNumber: trackingNumber,
		IsError:        true,
		ErrorMessage:   msg,
	}
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// sortEventsDesc orders events newest-first. parse turns an event's
// timestamp into a time; events that fail to parse sink to the end.
func sortEventsDesc(events []Event, parse func(Event) (time.Time, error)) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, erri := parse(events[i])
		tj, errj := parse(events[j])
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})
}
