package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatFragment struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role          string         `gorm:"type:varchar(50);not null"`
	Kind          string         `gorm:"type:varchar(50);not null"`
	Chat          string         `gorm:"type:text;not null"`
	Position      int            `gorm:"not null;default:0"` // Tie-breaker for fragments sharing CreatedAt
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ChatFragment) TableName() string {
	return "chat_fragments"
}
