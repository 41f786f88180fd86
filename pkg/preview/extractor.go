package preview

import (
	"sort"

	"ai-chat-history-be/internal/apperror"
	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/entity"
)

// Extractor reduces a raw session plus its fragments to a single ChatPreview.
type Extractor struct {
	maxLength int
}

func NewExtractor(maxLength int) *Extractor {
	return &Extractor{maxLength: maxLength}
}

// Extract derives the preview for one session. A user-assigned title wins
// verbatim; otherwise the first user text fragment in (CreatedAt, Position)
// order is truncated to the configured rune length; otherwise the fallback
// literal. CreatedAt is always the session's own creation time.
func (e *Extractor) Extract(session *entity.ChatSession, fragments []*entity.ChatFragment) (entity.ChatPreview, error) {
	if session.CreatedAt.IsZero() {
		return entity.ChatPreview{}, &apperror.MalformedSessionError{SessionID: session.Id.String()}
	}

	if session.Title != "" {
		return entity.ChatPreview{
			Id:           session.Id,
			FirstMessage: session.Title,
			CreatedAt:    session.CreatedAt,
		}, nil
	}

	return entity.ChatPreview{
		Id:           session.Id,
		FirstMessage: e.FirstMessage(fragments),
		CreatedAt:    session.CreatedAt,
	}, nil
}

// FirstMessage scans fragments in chronological order for the first user
// text and truncates it. Returns the fallback literal when none qualifies.
func (e *Extractor) FirstMessage(fragments []*entity.ChatFragment) string {
	ordered := make([]*entity.ChatFragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	for _, f := range ordered {
		if f.Role == constant.ChatFragmentRoleUser && f.Kind == constant.ChatFragmentKindText && f.Chat != "" {
			return e.Truncate(f.Chat)
		}
	}
	return constant.FallbackPreview
}

// Truncate cuts text to the configured maximum rune length. No ellipsis is
// appended; the display layer decides how to indicate overflow.
func (e *Extractor) Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= e.maxLength {
		return text
	}
	return string(runes[:e.maxLength])
}
