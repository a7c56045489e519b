package ws

import (
	"encoding/json"
	"time"

	"talent-match/internal/queue"

	"go.uber.org/zap"
)

type bulkFinishedEvent struct {
	Type           string       `json:"type"`
	EntryID        string       `json:"entry_id"`
	TenantID       string       `json:"tenant_id"`
	Status         queue.Status `json:"status"`
	ProcessedJobs  int          `json:"processed_jobs"`
	TotalJobs      int          `json:"total_jobs"`
	ProcessedPairs int          `json:"processed_pairs"`
	FailedPairs    int          `json:"failed_pairs"`
	Timestamp      string       `json:"timestamp"`
}

// Notifier pushes bulk completion events to connected clients.
// Implements the queue's NotificationDispatcher.
type Notifier struct {
	hub *Hub
	log *zap.Logger
}

func NewNotifier(hub *Hub, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{hub: hub, log: log}
}

func (n *Notifier) Notify(event queue.Event) {
	if n == nil || n.hub == nil {
		return
	}

	evt := bulkFinishedEvent{
		Type:           "bulk_matching_finished",
		EntryID:        event.EntryID.String(),
		TenantID:       event.TenantID,
		Status:         event.Status,
		ProcessedJobs:  event.Snapshot.ProcessedJobs,
		TotalJobs:      event.Snapshot.TotalJobs,
		ProcessedPairs: event.Snapshot.ProcessedPairs,
		FailedPairs:    len(event.Snapshot.Failures),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.log.Error("notify marshal failed", zap.Error(err))
		return
	}

	n.hub.Broadcast(b)
}
