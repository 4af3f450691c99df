package domain

import "time"

// Message is a single anonymous note left for an account. Messages are
// immutable once created; the only mutation is owner-initiated deletion.
type Message struct {
	ID        string
	AccountID string
	Content   string
	CreatedAt time.Time
}
