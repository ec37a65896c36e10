package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/internal/usecases"
)

// Chatbot answers support questions. None of its methods fail.
type Chatbot interface {
	Respond(ctx context.Context, message string) *entities.ChatReply
	Simple(message string) *entities.ChatReply
	QuickResponses() []entities.QuickResponse
	FAQs() []entities.FAQ
	Status() *usecases.ChatbotStatus
}

// ChatbotHandler handles chatbot endpoints
type ChatbotHandler struct {
	chatbot Chatbot
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(chatbot Chatbot) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

// SendMessage answers one message, using the generator when configured
// POST /api/v1/chatbot/message
func (h *ChatbotHandler) SendMessage(c *gin.Context) {
	var input entities.ChatMessageInput
	if !bindJSON(c, &input) {
		return
	}

	reply := h.chatbot.Respond(c.Request.Context(), input.Message)
	response.Success(c, http.StatusOK, "Reply generated", replyPayload(reply))
}

// SimpleMessage answers from the canned table only
// POST /api/v1/chatbot/simple
func (h *ChatbotHandler) SimpleMessage(c *gin.Context) {
	var input entities.ChatMessageInput
	if !bindJSON(c, &input) {
		return
	}

	response.Success(c, http.StatusOK, "Reply generated", replyPayload(h.chatbot.Simple(input.Message)))
}

// QuickResponses returns suggested prompts
// GET /api/v1/chatbot/quick-responses
func (h *ChatbotHandler) QuickResponses(c *gin.Context) {
	response.Success(c, http.StatusOK, "Quick responses retrieved", gin.H{"quick_responses": h.chatbot.QuickResponses()})
}

// FAQs returns the static FAQ list
// GET /api/v1/chatbot/faqs
func (h *ChatbotHandler) FAQs(c *gin.Context) {
	response.Success(c, http.StatusOK, "FAQs retrieved", gin.H{"faqs": h.chatbot.FAQs()})
}

// Test reports chatbot configuration
// GET /api/v1/chatbot/test
func (h *ChatbotHandler) Test(c *gin.Context) {
	status := h.chatbot.Status()
	response.Success(c, http.StatusOK, status.Message, gin.H{
		"timestamp":     status.Timestamp,
		"api_key_set":   status.APIKeySet,
		"test_fallback": status.TestFallback,
	})
}

func replyPayload(reply *entities.ChatReply) gin.H {
	return gin.H{
		"response": reply.Response,
		"intent":   reply.Intent,
		"type":     reply.Type,
	}
}
