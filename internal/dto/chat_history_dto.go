package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatPreviewDTO struct {
	Id           uuid.UUID `json:"id"`
	FirstMessage string    `json:"firstMessage"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategorizedChatsDTO is the fixed six-bucket shape the chat list renders.
type CategorizedChatsDTO struct {
	Today       []ChatPreviewDTO `json:"today"`
	Yesterday   []ChatPreviewDTO `json:"yesterday"`
	Last7Days   []ChatPreviewDTO `json:"last7Days"`
	Last30Days  []ChatPreviewDTO `json:"last30Days"`
	Last2Months []ChatPreviewDTO `json:"last2Months"`
	Older       []ChatPreviewDTO `json:"older"`
}

type GetChatPreviewsResponse struct {
	Previews    []ChatPreviewDTO    `json:"previews"`
	Categorized CategorizedChatsDTO `json:"categorized"`
	HasMore     bool                `json:"hasMore"`
}

type CreateSessionRequest struct {
	Title string `json:"title"` // Optional; empty = untitled
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type RecordPromptRequest struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Kind string `json:"kind" validate:"required,oneof=text image"`
	Chat string `json:"chat" validate:"required"`
}

type RenameSessionRequest struct {
	Title string `json:"title"`
}

type RenameSessionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DeleteSessionResponse always carries a human-readable status; delete never
// throws to the caller.
type DeleteSessionResponse struct {
	Message string `json:"message"`
}
