package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_agent/internal/domain"
)

var errEmptyCompletion = errors.New("empty completion")

type AiService struct {
	client   LLMClient
	provider string
	timeout  time.Duration
	log      domain.Logger
}

func NewAiService(client LLMClient, provider string, timeout time.Duration, log domain.Logger) *AiService {
	return &AiService{
		client:   client,
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

var _ domain.Completer = (*AiService)(nil)

// Complete отдаёт обрезанный по краям ответ. Любой сбой и пустой ответ - CompletionError.
func (s *AiService) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	ctxLLM := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctxLLM, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.client.GetCompletion(ctxLLM, prompt)
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[ai][%.1fs] %s done err=%v", time.Since(start).Seconds(), s.provider, err),
		Service: domain.ServiceName,
	})
	if err != nil {
		return "", &domain.CompletionError{Provider: s.provider, Err: err}
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", &domain.CompletionError{Provider: s.provider, Err: errEmptyCompletion}
	}
	return reply, nil
}
