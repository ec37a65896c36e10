package entities

// Intent is the coarse topic of a chatbot message.
type Intent string

const (
	IntentBooking   Intent = "booking"
	IntentProvider  Intent = "provider"
	IntentAdmin     Intent = "admin"
	IntentPayment   Intent = "payment"
	IntentTechnical Intent = "technical"
	IntentGeneral   Intent = "general"
)

// ChatResponseType tells the caller where a reply came from.
type ChatResponseType string

const (
	ChatResponseAI                ChatResponseType = "ai"
	ChatResponseFallbackNoAPIKey  ChatResponseType = "fallback_no_api_key"
	ChatResponseFallbackAPIFailed ChatResponseType = "fallback_api_failed"
	ChatResponseFallbackTimeout   ChatResponseType = "fallback_timeout"
	ChatResponseCanned            ChatResponseType = "canned"
)

// ChatReply is the chatbot's answer to one message.
type ChatReply struct {
	Response string           `json:"response"`
	Intent   Intent           `json:"intent"`
	Type     ChatResponseType `json:"type"`
}

// ChatMessageInput is the POST /chatbot/message body.
type ChatMessageInput struct {
	Message string `json:"message" binding:"required,notblank,max=1000"`
}

// QuickResponse is a suggested prompt shown by chat clients.
type QuickResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// FAQ is a static question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}
