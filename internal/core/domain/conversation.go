package domain

import "time"

// Role identifies the author of a conversation message.
type Role string

// Message roles.
const (
	// RoleSystem is the instruction prompt set by the application.
	RoleSystem Role = "system"

	// RoleUser is text typed by the person chatting.
	RoleUser Role = "user"

	// RoleAssistant is a model reply, possibly carrying tool calls.
	RoleAssistant Role = "assistant"

	// RoleTool is the result of a tool execution fed back to the model.
	RoleTool Role = "tool"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Conversation is an ordered exchange between a user and the assistant.
// Only the user turns and final assistant replies are persisted; intermediate
// tool round-trips live within a single turn and are discarded.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string

	// Title is a short human-readable label (first user message by default).
	Title string

	// CreatedAt is when the conversation started.
	CreatedAt time.Time

	// UpdatedAt is when the last message was appended.
	UpdatedAt time.Time
}

// Message is a single turn within a conversation.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// ConversationID links to the owning Conversation.
	ConversationID string

	// Role is who authored the message.
	Role Role

	// Content is the message text.
	Content string

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time
}
