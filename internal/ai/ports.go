package ai

import "context"

// LLMClient - сырой клиент провайдера: один промпт → один ответ.
type LLMClient interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}
