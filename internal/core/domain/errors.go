package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// unreachable. The assistant cannot answer without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrAPIKeyMissing indicates the configured provider requires an API key
	// and none was found in settings or the environment.
	ErrAPIKeyMissing = errors.New("API key missing")

	// ErrUnknownTool indicates the model requested a tool the assistant does
	// not implement.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrToolLoopExceeded indicates a single turn required more tool
	// round-trips than the configured cap allows.
	ErrToolLoopExceeded = errors.New("tool loop limit exceeded")

	// ErrEmptyCatalog indicates the catalog has no products to answer about.
	ErrEmptyCatalog = errors.New("catalog is empty")
)
