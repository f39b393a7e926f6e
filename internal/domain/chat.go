package domain

// Papéis aceitos no histórico da conversa.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage é uma mensagem da conversa com o assistente.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest é o payload de POST /ai/chat.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
	Model   string        `json:"model,omitempty"`
}

// ChatResponse é a resposta do assistente.
type ChatResponse struct {
	Response string `json:"response"`
}
