package dto

import "github.com/google/uuid"

// PublishInvalidationMessage is emitted when a lifecycle mutation makes a
// user's accumulated preview state stale.
type PublishInvalidationMessage struct {
	UserId uuid.UUID `json:"user_id"`
}
