package ports

import "context"

// CompletionClient is the hosted-model boundary: one prompt in, one
// completion out. The concrete client lives in infrastructure/ai.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CommandService runs a user command through the model and arranges for the
// exchange to be recorded against the authenticated subject.
type CommandService interface {
	Run(ctx context.Context, userID, command string) (string, error)
}
