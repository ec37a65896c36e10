package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/metrics"
)

// TextGenerator is an external text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatbotStatus reports how the chatbot is configured.
type ChatbotStatus struct {
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	APIKeySet    bool      `json:"api_key_set"`
	TestFallback string    `json:"test_fallback"`
}

// ChatbotUsecase answers chat messages. Replies come from the generator when one
// is configured and succeeds in time, otherwise from the canned table. It never fails.
type ChatbotUsecase struct {
	generator TextGenerator
	timeout   time.Duration
	metrics   *metrics.Metrics
}

// NewChatbotUsecase creates a new chatbot usecase. generator may be nil.
func NewChatbotUsecase(generator TextGenerator, timeout time.Duration, m *metrics.Metrics) *ChatbotUsecase {
	if timeout <= 0 {
		timeout = DefaultChatbotTimeout
	}
	return &ChatbotUsecase{
		generator: generator,
		timeout:   timeout,
		metrics:   m,
	}
}

// Respond answers message, falling back to the canned response on any generator failure.
func (u *ChatbotUsecase) Respond(ctx context.Context, message string) *entities.ChatReply {
	intent := Classify(message)

	if u.generator == nil {
		return u.reply(message, intent, entities.ChatResponseFallbackNoAPIKey)
	}

	genCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	text, err := u.generator.Generate(genCtx, BuildPrompt(message, intent))
	if err == nil && strings.TrimSpace(text) != "" {
		u.metrics.ObserveChatbot(string(entities.ChatResponseAI))
		return &entities.ChatReply{Response: text, Intent: intent, Type: entities.ChatResponseAI}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded) {
		logger.Warn(ctx, "Chatbot generator timed out", zap.Duration("timeout", u.timeout))
		return u.reply(message, intent, entities.ChatResponseFallbackTimeout)
	}

	logger.Warn(ctx, "Chatbot generator failed", zap.Error(err))
	return u.reply(message, intent, entities.ChatResponseFallbackAPIFailed)
}

// Simple answers from the canned table only.
func (u *ChatbotUsecase) Simple(message string) *entities.ChatReply {
	return u.reply(message, Classify(message), entities.ChatResponseCanned)
}

// QuickResponses returns suggested prompts.
func (u *ChatbotUsecase) QuickResponses() []entities.QuickResponse {
	out := make([]entities.QuickResponse, len(quickResponses))
	copy(out, quickResponses)
	return out
}

// FAQs returns the static question/answer list.
func (u *ChatbotUsecase) FAQs() []entities.FAQ {
	out := make([]entities.FAQ, len(faqs))
	copy(out, faqs)
	return out
}

// Status reports whether a generator is configured and samples the canned path.
func (u *ChatbotUsecase) Status() *ChatbotStatus {
	return &ChatbotStatus{
		Message:      "Chatbot is working!",
		Timestamp:    time.Now().UTC(),
		APIKeySet:    u.generator != nil,
		TestFallback: CannedResponse("hello"),
	}
}

func (u *ChatbotUsecase) reply(message string, intent entities.Intent, responseType entities.ChatResponseType) *entities.ChatReply {
	u.metrics.ObserveChatbot(string(responseType))
	return &entities.ChatReply{
		Response: CannedResponse(message),
		Intent:   intent,
		Type:     responseType,
	}
}
