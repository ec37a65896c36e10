package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/usecases"
)

type textGeneratorStub struct {
	generateFn func(context.Context, string) (string, error)
}

func (s textGeneratorStub) Generate(ctx context.Context, prompt string) (string, error) {
	return s.generateFn(ctx, prompt)
}

func TestChatbotHandler_Message(t *testing.T) {
	bot := usecases.NewChatbotUsecase(nil, time.Second, nil)
	h := NewChatbotHandler(bot)
	r := authedRouter(uuid.Nil)
	r.POST("/chatbot/message", h.SendMessage)
	r.POST("/chatbot/simple", h.SimpleMessage)

	body := requireStatus(t, doJSON(r, http.MethodPost, "/chatbot/message", map[string]string{"message": "How do I book a plumber?"}), http.StatusOK)
	assert.Equal(t, string(entities.IntentBooking), body["intent"])
	assert.Equal(t, string(entities.ChatResponseFallbackNoAPIKey), body["type"])
	assert.NotEmpty(t, body["response"])

	body = requireStatus(t, doJSON(r, http.MethodPost, "/chatbot/simple", map[string]string{"message": "hello"}), http.StatusOK)
	assert.Equal(t, string(entities.ChatResponseCanned), body["type"])

	requireStatus(t, doJSON(r, http.MethodPost, "/chatbot/message", map[string]string{"message": "  "}), http.StatusUnprocessableEntity)
	requireStatus(t, doJSON(r, http.MethodPost, "/chatbot/message", map[string]string{"message": strings.Repeat("a", 1001)}), http.StatusUnprocessableEntity)
}

func TestChatbotHandler_MessageWithGenerator(t *testing.T) {
	bot := usecases.NewChatbotUsecase(textGeneratorStub{
		generateFn: func(context.Context, string) (string, error) { return "Generated answer", nil },
	}, time.Second, nil)
	h := NewChatbotHandler(bot)
	r := authedRouter(uuid.Nil)
	r.POST("/chatbot/message", h.SendMessage)
	r.GET("/chatbot/test", h.Test)

	body := requireStatus(t, doJSON(r, http.MethodPost, "/chatbot/message", map[string]string{"message": "payment options?"}), http.StatusOK)
	assert.Equal(t, "Generated answer", body["response"])
	assert.Equal(t, string(entities.ChatResponseAI), body["type"])

	body = requireStatus(t, doJSON(r, http.MethodGet, "/chatbot/test", nil), http.StatusOK)
	assert.Equal(t, true, body["api_key_set"])
	assert.NotEmpty(t, body["test_fallback"])
}

func TestChatbotHandler_StaticLists(t *testing.T) {
	h := NewChatbotHandler(usecases.NewChatbotUsecase(nil, 0, nil))
	r := authedRouter(uuid.Nil)
	r.GET("/chatbot/quick-responses", h.QuickResponses)
	r.GET("/chatbot/faqs", h.FAQs)

	body := requireStatus(t, doJSON(r, http.MethodGet, "/chatbot/quick-responses", nil), http.StatusOK)
	assert.NotEmpty(t, body["quick_responses"])

	body = requireStatus(t, doJSON(r, http.MethodGet, "/chatbot/faqs", nil), http.StatusOK)
	faqs := body["faqs"].([]interface{})
	assert.NotEmpty(t, faqs[0].(map[string]interface{})["question"])
}
