package domain

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string         `json:"userid"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"` // Oculta o hash da senha no JSON de resposta
	Auth         string         `json:"-"`
	History      []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry é uma nota datada no histórico do usuário.
type HistoryEntry struct {
	Date        string `json:"date"` // "YYYY-MM-DD"
	Description string `json:"description"`
}

// HistoryDocument é o formato JSON persistido na coluna users.history.
type HistoryDocument struct {
	History []HistoryEntry `json:"history"`
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult é a resposta de um login bem-sucedido.
type LoginResult struct {
	Success  bool   `json:"success"`
	UserID   string `json:"userid"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// HistoryRequest é o payload de POST /users/{id}/history.
type HistoryRequest struct {
	Description string `json:"description"`
	Date        string `json:"date,omitempty"` // padrão: hoje
}
