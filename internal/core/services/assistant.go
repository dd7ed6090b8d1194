package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// llmRateLimit is the client-side ceiling on model calls. Tool loops can fan
// a single user turn into several requests; the token bucket keeps a runaway
// loop from hammering the provider.
var llmRateLimit = rate.Limit(2.0)

// llmRateBurst allows a full default tool loop to run without throttling.
const llmRateBurst = 8

// defaultSystemPrompt is the fallback when no PromptStore is configured.
const defaultSystemPrompt = `You are a professional e-commerce customer service assistant. You help users:
1. Search for products
2. View product details
3. Answer product questions
4. Give purchase advice

Always use the tools to look up real catalog data before answering. Never invent products, prices, or stock levels. Be polite, professional, and accurate. If the catalog has nothing matching the request, say so.`

// defaultAdvicePrompt is the fallback purchase-advice template. It takes one
// %s placeholder for the product details.
const defaultAdvicePrompt = `Based on the following product information, give brief and practical purchase advice.
Mention value for money, stock availability, and who the product suits.

Product:
%s

Advice:`

// AssistantService runs conversational turns against the LLM, resolving the
// model's catalog tool calls and buffering history between turns.
type AssistantService struct {
	llm         driven.LLMService
	catalog     driving.CatalogService
	convStore   driven.ConversationStore
	promptStore driven.PromptStore
	limiter     *rate.Limiter
	settings    domain.AssistantSettings
	convID      string
}

// NewAssistantService creates a new assistant service. The conversation is
// created lazily on the first Ask.
func NewAssistantService(
	llm driven.LLMService,
	catalog driving.CatalogService,
	convStore driven.ConversationStore,
	settings domain.AssistantSettings,
) *AssistantService {
	if settings.ToolLoopLimit <= 0 {
		settings.ToolLoopLimit = domain.DefaultAppSettings().Assistant.ToolLoopLimit
	}
	if settings.MaxSearchResults <= 0 {
		settings.MaxSearchResults = domain.DefaultAppSettings().Assistant.MaxSearchResults
	}

	return &AssistantService{
		llm:       llm,
		catalog:   catalog,
		convStore: convStore,
		limiter:   rate.NewLimiter(llmRateLimit, llmRateBurst),
		settings:  settings,
	}
}

// SetPromptStore sets the prompt store for loading the customisable system
// prompt. If not set, the service uses the hardcoded default.
func (s *AssistantService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Resume attaches the service to an existing conversation so history carries
// across process restarts.
func (s *AssistantService) Resume(ctx context.Context, conversationID string) error {
	if _, err := s.convStore.GetConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("resume conversation: %w", err)
	}
	s.convID = conversationID
	return nil
}

// Ask runs one conversational turn. The user message and final assistant
// reply are persisted only after the turn succeeds, so a failed turn leaves
// history untouched.
func (s *AssistantService) Ask(ctx context.Context, input string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	if err := s.ensureConversation(ctx, input); err != nil {
		return "", err
	}

	history, err := s.History(ctx)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	messages := s.buildMessages(history, input)
	opts := driven.ChatOptions{
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
		Tools:       s.toolDefs(),
	}

	logger.Section("Assistant Turn")
	logger.Debug("Model: %s, history: %d messages", s.llm.ModelName(), len(history))

	reply, err := s.runToolLoop(ctx, messages, opts)
	if err != nil {
		return "", err
	}

	if err := s.persistTurn(ctx, input, reply); err != nil {
		return "", fmt.Errorf("persist turn: %w", err)
	}

	return reply, nil
}

// Advise produces purchase advice for one product. It is a single plain
// completion over the product's details and leaves conversation history
// untouched.
func (s *AssistantService) Advise(ctx context.Context, productID string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("advise on product %q: %w", productID, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	logger.Debug("Purchase advice for %s (%s)", product.ID, product.Name)

	prompt := fmt.Sprintf(s.advicePrompt(), productSummary(product))
	advice, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	return strings.TrimSpace(advice), nil
}

// runToolLoop calls the model, resolving tool calls until it produces a
// plain text reply or the loop cap is hit.
func (s *AssistantService) runToolLoop(
	ctx context.Context,
	messages []driven.ChatMessage,
	opts driven.ChatOptions,
) (string, error) {
	for round := 0; round < s.settings.ToolLoopLimit; round++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		reply, err := s.llm.Chat(ctx, messages, opts)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
		}

		if len(reply.ToolCalls) == 0 {
			return strings.TrimSpace(reply.Content), nil
		}

		messages = append(messages, *reply)
		for _, call := range reply.ToolCalls {
			logger.Debug("Tool call: %s(%s)", call.Name, call.Arguments)
			result := s.executeTool(ctx, call)
			messages = append(messages, driven.ChatMessage{
				Role:       domain.RoleTool.String(),
				Content:    result,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
	}

	return "", domain.ErrToolLoopExceeded
}

// executeTool dispatches a model tool call against the catalog. Failures are
// reported to the model as JSON error payloads rather than aborting the turn,
// so it can recover or apologise.
func (s *AssistantService) executeTool(ctx context.Context, call domain.ToolCall) string {
	if !domain.KnownTool(call.Name) {
		logger.Warn("Model requested unknown tool %q", call.Name)
		return toolError(fmt.Errorf("%w: %s", domain.ErrUnknownTool, call.Name).Error())
	}
	if call.Name == domain.ToolSearchProducts {
		return s.runSearchTool(ctx, call.Arguments)
	}
	return s.runDetailsTool(ctx, call.Arguments)
}

// searchToolArgs is the argument shape of the search_products tool.
type searchToolArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// detailsToolArgs is the argument shape of the get_product_details tool.
type detailsToolArgs struct {
	ProductID string `json:"product_id"`
}

// productPayload is the product shape returned to the model.
type productPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

func (s *AssistantService) runSearchTool(ctx context.Context, rawArgs string) string {
	var args searchToolArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return toolError("bad arguments: expected {\"query\": string}")
	}

	limit := args.Limit
	if limit <= 0 || limit > s.settings.MaxSearchResults {
		limit = s.settings.MaxSearchResults
	}

	matches, err := s.catalog.Search(ctx, args.Query, limit)
	if err != nil {
		return toolError(err.Error())
	}

	results := make([]productPayload, len(matches))
	for i := range matches {
		results[i] = toPayload(&matches[i].Product)
	}

	out, err := json.Marshal(map[string]any{
		"results": results,
		"count":   len(results),
	})
	if err != nil {
		return toolError("encode results failed")
	}
	return string(out)
}

func (s *AssistantService) runDetailsTool(ctx context.Context, rawArgs string) string {
	var args detailsToolArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return toolError("bad arguments: expected {\"product_id\": string}")
	}

	product, err := s.catalog.Get(ctx, args.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return toolError(fmt.Sprintf("no product with ID %q", args.ProductID))
		}
		return toolError(err.Error())
	}

	out, err := json.Marshal(toPayload(product))
	if err != nil {
		return toolError("encode product failed")
	}
	return string(out)
}

// toolDefs describes the catalog tools in JSON Schema for the model.
func (s *AssistantService) toolDefs() []driven.ToolDef {
	return []driven.ToolDef{
		{
			Name:        domain.ToolSearchProducts,
			Description: "Search the product catalog by keyword. Returns matching products with ID, name, price, and stock.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search keywords, e.g. a product name or category",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results to return",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        domain.ToolGetProductDetails,
			Description: "Get full details for one product by its ID, including description and stock.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"product_id": map[string]any{
						"type":        "string",
						"description": "The product ID as returned by search_products",
					},
				},
				"required": []string{"product_id"},
			},
		},
	}
}

// buildMessages assembles the model context: system prompt, buffered history
// (optionally capped), and the new user input.
func (s *AssistantService) buildMessages(history []domain.Message, input string) []driven.ChatMessage {
	// MaxHistory counts turns. Each turn persists a user message and an
	// assistant reply, so trimming keeps whole pairs and never replays an
	// assistant reply without the question that prompted it.
	if s.settings.MaxHistory > 0 {
		if limit := s.settings.MaxHistory * 2; len(history) > limit {
			history = history[len(history)-limit:]
		}
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{
		Role:    domain.RoleSystem.String(),
		Content: s.systemPrompt(),
	})
	for _, msg := range history {
		messages = append(messages, driven.ChatMessage{
			Role:    msg.Role.String(),
			Content: msg.Content,
		})
	}
	messages = append(messages, driven.ChatMessage{
		Role:    domain.RoleUser.String(),
		Content: input,
	})
	return messages
}

// systemPrompt loads the chat system prompt, falling back to the default.
func (s *AssistantService) systemPrompt() string {
	if s.promptStore == nil {
		return defaultSystemPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptChatSystem)
	if err != nil {
		return defaultSystemPrompt
	}
	return prompt
}

// advicePrompt loads the purchase-advice template, falling back to the default.
func (s *AssistantService) advicePrompt() string {
	if s.promptStore == nil {
		return defaultAdvicePrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptPurchaseAdvice)
	if err != nil || !strings.Contains(prompt, "%s") {
		return defaultAdvicePrompt
	}
	return prompt
}

// productSummary renders a product as plain text for the advice prompt.
func productSummary(p *domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nPrice: %.2f\nStock: %d", p.Name, p.Price, p.Stock)
	if p.Category != "" {
		fmt.Fprintf(&b, "\nCategory: %s", p.Category)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s", p.Description)
	}
	return b.String()
}

// ensureConversation creates the backing conversation on first use.
func (s *AssistantService) ensureConversation(ctx context.Context, firstInput string) error {
	if s.convID != "" {
		return nil
	}

	now := time.Now()
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		Title:     truncate(firstInput, 80),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convStore.CreateConversation(ctx, conv); err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	s.convID = conv.ID
	return nil
}

// persistTurn stores the user input and final assistant reply. Intermediate
// tool messages are deliberately not stored; they are turn-local scaffolding.
func (s *AssistantService) persistTurn(ctx context.Context, input, reply string) error {
	now := time.Now()
	userMsg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: s.convID,
		Role:           domain.RoleUser,
		Content:        input,
		CreatedAt:      now,
	}
	if err := s.convStore.AppendMessage(ctx, userMsg); err != nil {
		return err
	}

	assistantMsg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: s.convID,
		Role:           domain.RoleAssistant,
		Content:        reply,
		CreatedAt:      now,
	}
	return s.convStore.AppendMessage(ctx, assistantMsg)
}

// History returns the persisted messages of the active conversation.
func (s *AssistantService) History(ctx context.Context) ([]domain.Message, error) {
	if s.convID == "" {
		return nil, nil
	}
	return s.convStore.Messages(ctx, s.convID)
}

// Reset clears the active conversation's history.
func (s *AssistantService) Reset(ctx context.Context) error {
	if s.convID == "" {
		return nil
	}
	return s.convStore.ClearMessages(ctx, s.convID)
}

// ConversationID returns the active conversation's identifier.
// Empty until the first Ask.
func (s *AssistantService) ConversationID() string {
	return s.convID
}

// ModelName returns the backing model's name for display.
func (s *AssistantService) ModelName() string {
	if s.llm == nil {
		return ""
	}
	return s.llm.ModelName()
}

// toolError encodes an error payload the model can read.
func toolError(msg string) string {
	out, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return `{"error":"internal error"}`
	}
	return string(out)
}

func toPayload(p *domain.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
	}
}

// truncate shortens s to at most n runes for display titles.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
