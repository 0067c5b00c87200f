package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type ActivityEvent struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Detail    string `json:"detail,omitempty"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyActivity(kind, subject, detail string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if kind == "" {
		return
	}

	evt := ActivityEvent{
		Type:      "activity",
		Kind:      kind,
		Subject:   subject,
		Detail:    detail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

// Notifier satisfies the usecase notifier contract on top of the default
// hub.
type Notifier struct{}

func (Notifier) Publish(kind, subject, detail string) {
	NotifyActivity(kind, subject, detail)
}
