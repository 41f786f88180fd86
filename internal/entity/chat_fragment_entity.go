package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatFragment is a piece of a session's conversation. Role and Kind decide
// whether a fragment qualifies as preview material (role=user, kind=text);
// Position breaks ties between fragments sharing a CreatedAt.
type ChatFragment struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Kind          string
	Chat          string
	Position      int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
