package domain

import "time"

// NotificationRecord logs an outbound notification attempt. Delivery itself
// is handled by an external collaborator; the record is what this service
// keeps.
type NotificationRecord struct {
	ID        string
	CitizenID string
	StickerID string
	Type      string
	Channel   string
	Recipient string
	Status    string
	SentAt    time.Time
}
