package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// UserTextFragments narrows to the fragments that qualify as preview
// material: authored by the user and plain text.
type UserTextFragments struct{}

func (s UserTextFragments) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ? AND kind = ?", "user", "text")
}
