package store

import "time"

// Notification is the storage representation of one live-update event.
type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Alert is the storage representation of an attention-needed item.
type Alert struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url"`
}

// Stats are the live counters carried by every snapshot.
type Stats struct {
	PendingModeration int `json:"pending_moderation"`
	ActiveWarnings    int `json:"active_warnings"`
	OnlineUsers       int `json:"online_users"`
	ActiveAdmins      int `json:"active_admins"`
}

// Snapshot is the storage representation of one live-updates fetch.
//
// Snapshot is decoupled from the SDK's payload types so storage can evolve
// independently of the wire format; callers convert at the boundary.
type Snapshot struct {
	// ReceivedAt is when the snapshot was stored locally.
	ReceivedAt time.Time `json:"received_at"`

	// Timestamp is the server time of the fetch.
	Timestamp time.Time `json:"timestamp"`

	// Notifications are the events since the previous fetch.
	Notifications []Notification `json:"notifications"`

	// Stats are the current live counters.
	Stats Stats `json:"stats"`

	// Alerts are items needing immediate attention.
	Alerts []Alert `json:"alerts"`
}

// Store defines the interface for storing and subscribing to snapshots.
//
// Store implementations must be safe for concurrent access. The pub/sub
// mechanism allows new snapshots to be pushed to watchers as they arrive.
type Store interface {
	// Update stores a new snapshot and notifies all subscribers.
	Update(snap Snapshot)

	// Latest returns the most recently stored snapshot. The second return
	// value is false if no snapshot has been stored yet.
	Latest() (Snapshot, bool)

	// Subscribe returns a channel that receives snapshots as they are
	// stored. The channel is buffered; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Snapshot

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan Snapshot)
}
