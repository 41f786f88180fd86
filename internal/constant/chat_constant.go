package constant

const (
	ChatFragmentRoleUser  = "user"
	ChatFragmentRoleModel = "model"

	ChatFragmentKindText  = "text"
	ChatFragmentKindImage = "image"

	// FallbackPreview is shown for sessions that have no user text yet.
	FallbackPreview = "No messages yet"

	// InvalidationTopic carries cache-eviction events after lifecycle mutations.
	InvalidationTopic = "CHAT_SESSION_INVALIDATED"
)
