package preview

import (
	"errors"
	"strings"
	"testing"
	"time"

	"ai-chat-history-be/internal/apperror"
	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userText(chat string, createdAt time.Time, position int) *entity.ChatFragment {
	return &entity.ChatFragment{
		Id:        uuid.New(),
		Role:      constant.ChatFragmentRoleUser,
		Kind:      constant.ChatFragmentKindText,
		Chat:      chat,
		Position:  position,
		CreatedAt: createdAt,
	}
}

func TestExtractTitleWinsVerbatim(t *testing.T) {
	e := NewExtractor(10)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     "A title far longer than the configured maximum length",
		CreatedAt: created,
	}

	got, err := e.Extract(session, []*entity.ChatFragment{
		userText("hello there", created, 0),
	})

	require.NoError(t, err)
	// Titles are user-assigned and never truncated.
	assert.Equal(t, session.Title, got.FirstMessage)
	assert.Equal(t, session.Id, got.Id)
	assert.Equal(t, created, got.CreatedAt)
}

func TestExtractFirstUserTextFragment(t *testing.T) {
	e := NewExtractor(100)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &entity.ChatSession{Id: uuid.New(), CreatedAt: created}

	later := created.Add(2 * time.Minute)
	earlier := created.Add(1 * time.Minute)

	fragments := []*entity.ChatFragment{
		userText("second question", later, 3),
		{
			Id:        uuid.New(),
			Role:      constant.ChatFragmentRoleModel,
			Kind:      constant.ChatFragmentKindText,
			Chat:      "model reply",
			Position:  1,
			CreatedAt: created,
		},
		{
			Id:        uuid.New(),
			Role:      constant.ChatFragmentRoleUser,
			Kind:      constant.ChatFragmentKindImage,
			Chat:      "image.png",
			Position:  0,
			CreatedAt: created,
		},
		userText("first question", earlier, 2),
	}

	got, err := e.Extract(session, fragments)

	require.NoError(t, err)
	assert.Equal(t, "first question", got.FirstMessage)
}

func TestExtractOrdersByPositionWithinSameTimestamp(t *testing.T) {
	e := NewExtractor(100)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &entity.ChatSession{Id: uuid.New(), CreatedAt: created}

	fragments := []*entity.ChatFragment{
		userText("position two", created, 2),
		userText("position zero", created, 0),
		userText("position one", created, 1),
	}

	got, err := e.Extract(session, fragments)

	require.NoError(t, err)
	assert.Equal(t, "position zero", got.FirstMessage)
}

func TestExtractSkipsEmptyUserText(t *testing.T) {
	e := NewExtractor(100)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &entity.ChatSession{Id: uuid.New(), CreatedAt: created}

	fragments := []*entity.ChatFragment{
		userText("", created, 0),
		userText("real message", created.Add(time.Second), 1),
	}

	got, err := e.Extract(session, fragments)

	require.NoError(t, err)
	assert.Equal(t, "real message", got.FirstMessage)
}

func TestExtractFallbackWhenNoUserText(t *testing.T) {
	e := NewExtractor(100)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &entity.ChatSession{Id: uuid.New(), CreatedAt: created}

	got, err := e.Extract(session, nil)

	require.NoError(t, err)
	assert.Equal(t, constant.FallbackPreview, got.FirstMessage)
	assert.Equal(t, created, got.CreatedAt)
}

func TestExtractZeroCreatedAtIsMalformed(t *testing.T) {
	e := NewExtractor(100)
	session := &entity.ChatSession{Id: uuid.New()}

	_, err := e.Extract(session, nil)

	var malformed *apperror.MalformedSessionError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, session.Id.String(), malformed.SessionID)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		maxLength int
		text      string
		want      string
	}{
		{
			name:      "shorter than limit untouched",
			maxLength: 10,
			text:      "short",
			want:      "short",
		},
		{
			name:      "exactly at limit untouched",
			maxLength: 5,
			text:      "exact",
			want:      "exact",
		},
		{
			name:      "over the limit cut with no ellipsis",
			maxLength: 4,
			text:      "overflow",
			want:      "over",
		},
		{
			name:      "limit counts runes not bytes",
			maxLength: 3,
			text:      "æøåxyz",
			want:      "æøå",
		},
		{
			name:      "hundred rune default",
			maxLength: 100,
			text:      strings.Repeat("a", 150),
			want:      strings.Repeat("a", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(tt.maxLength)
			assert.Equal(t, tt.want, e.Truncate(tt.text))
		})
	}
}
