package domain

// MessageResponse é a resposta das operações de escrita.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Added 5 of Paracetamol"`
}

// HealthResponse é a resposta de GET /health.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp" example:"2026-10-14T09:00:00Z"`
}

// HistoryResponse lista o histórico de um usuário.
type HistoryResponse struct {
	UserID  string         `json:"userid"`
	History []HistoryEntry `json:"history"`
}
