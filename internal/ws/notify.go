package ws

import (
	"encoding/json"
	"time"
)

type DataUpdatedEvent struct {
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	Timestamp string `json:"ts"`
}

// Notifier broadcasts data-changed events so open dashboards refetch.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyDataUpdated(entity string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := DataUpdatedEvent{
		Type:      "data_updated",
		Entity:    entity,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
