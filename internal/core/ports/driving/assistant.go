package driving

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// AssistantService answers shopping questions over the catalog.
type AssistantService interface {
	// Ask runs one conversational turn: the user text goes to the model with
	// the catalog tools attached, tool calls are resolved, and the final
	// assistant reply is returned. On error the turn leaves no trace in
	// history, so a retry is clean.
	Ask(ctx context.Context, input string) (string, error)

	// Advise produces purchase advice for one product. It is a single plain
	// completion over the product's details, outside the conversation.
	Advise(ctx context.Context, productID string) (string, error)

	// History returns the persisted messages of the active conversation.
	History(ctx context.Context) ([]domain.Message, error)

	// Reset clears the active conversation's history.
	Reset(ctx context.Context) error

	// ConversationID returns the active conversation's identifier.
	ConversationID() string

	// ModelName returns the backing model's name for display.
	ModelName() string
}
