package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatPreview is the reduced, display-ready summary of a session.
// FirstMessage is never empty; CreatedAt is the session's creation time,
// never a fragment's, and is the sole sort and bucketing key.
type ChatPreview struct {
	Id           uuid.UUID
	FirstMessage string
	CreatedAt    time.Time
}
