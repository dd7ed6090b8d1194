package driven

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// ConversationStore persists conversations and their messages.
// Only user turns and final assistant replies are stored; tool round-trips
// within a turn are ephemeral.
type ConversationStore interface {
	// CreateConversation stores a new conversation.
	CreateConversation(ctx context.Context, conv *domain.Conversation) error

	// GetConversation retrieves a conversation by ID.
	// Returns domain.ErrNotFound if absent.
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// ListConversations returns all conversations, most recent first.
	ListConversations(ctx context.Context) ([]domain.Conversation, error)

	// AppendMessage adds a message to a conversation.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// Messages returns a conversation's messages in insertion order.
	Messages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// ClearMessages removes all messages from a conversation.
	ClearMessages(ctx context.Context, conversationID string) error
}
