package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one persisted conversation owned by a single user.
// An empty Title means the user never named it; the preview falls back to
// the first user text fragment.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
