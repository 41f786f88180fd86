package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_chat_sessions_user_created"` // User ownership for data isolation
	Title     string         `gorm:"type:text"`                                               // Empty = untitled, preview derives from first user fragment
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_chat_sessions_user_created,sort:desc"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
