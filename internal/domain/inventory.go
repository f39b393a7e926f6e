package domain

import (
	"encoding/json"
	"time"
)

// Limites usados no resumo do dashboard e no contexto do assistente.
const (
	LowStockThreshold  = 50 // quantidade estritamente abaixo disso é estoque baixo
	ExpiringWindowDays = 30 // vence em [0, 30] dias a partir de hoje
)

// InventoryItem representa um lote de medicamento em uma localização.
// A chave única é (Location, UPID, Expiration); Quantity é sempre > 0 no banco.
type InventoryItem struct {
	UPID       string    `json:"upid"`
	Location   string    `json:"location"`
	Quantity   int       `json:"quantity"`
	Expiration time.Time `json:"expiration"`
	Name       string    `json:"name"`
}

// MarshalJSON expõe a validade como "YYYY-MM-DD", ou null quando ausente.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	var exp *string
	if i.HasExpiration() {
		s := i.Expiration.Format("2006-01-02")
		exp = &s
	}
	return json.Marshal(struct {
		UPID       string  `json:"upid"`
		Location   string  `json:"location"`
		Quantity   int     `json:"quantity"`
		Expiration *string `json:"expiration" swaggertype:"string" example:"2027-03-01"`
		Name       string  `json:"name"`
	}{i.UPID, i.Location, i.Quantity, exp, i.Name})
}

// HasExpiration indica se o lote possui data de validade.
func (i InventoryItem) HasExpiration() bool {
	return !i.Expiration.IsZero()
}

// DaysUntilExpiry retorna quantos dias faltam para a validade (negativo se vencido).
func (i InventoryItem) DaysUntilExpiry(today time.Time) int {
	return int(DateOf(i.Expiration).Sub(DateOf(today)).Hours() / 24)
}

// IsExpired informa se a validade é estritamente anterior a hoje.
func (i InventoryItem) IsExpired(today time.Time) bool {
	return i.HasExpiration() && i.DaysUntilExpiry(today) < 0
}

// IsExpiringSoon informa se a validade está entre hoje e hoje+30 (inclusive).
func (i InventoryItem) IsExpiringSoon(today time.Time) bool {
	if !i.HasExpiration() {
		return false
	}
	days := i.DaysUntilExpiry(today)
	return days >= 0 && days <= ExpiringWindowDays
}

// IsLowStock informa se a quantidade está abaixo do limite de estoque baixo.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity < LowStockThreshold
}

// DateOf descarta horário e fuso, mantendo apenas o dia do calendário (em UTC).
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StockAdjustment é o comando validado de entrada/saída de estoque.
type StockAdjustment struct {
	Actor      string
	UPID       string
	Location   string
	Quantity   int
	Expiration time.Time
	Name       string // usado apenas na entrada
}

// RemoveResult descreve o efeito de uma retirada de estoque.
type RemoveResult struct {
	UPID      string
	Location  string
	Remaining int
	Deleted   bool
}

// AddStockRequest é o payload de POST /inventory/add.
type AddStockRequest struct {
	UserID     string `json:"userid"`
	UPID       string `json:"upid"`
	Location   string `json:"location"`
	Quantity   int    `json:"quantity"`
	Expiration string `json:"expiration"` // "YYYY-MM-DD"
	Name       string `json:"name"`
}

// RemoveStockRequest é o payload de POST /inventory/remove.
type RemoveStockRequest struct {
	UserID     string `json:"userid"`
	UPID       string `json:"upid"`
	Location   string `json:"location"`
	Quantity   int    `json:"quantity"`
	Expiration string `json:"expiration"`
}

// InventorySummary alimenta os cards do dashboard.
type InventorySummary struct {
	TotalItems    int `json:"totalItems"`
	LowStock      int `json:"lowStock"`
	ExpiringSoon  int `json:"expiringSoon"`
	CriticalItems int `json:"criticalItems"`
	RecentUpdates int `json:"recentUpdates"`
}

// LocationSummary agrega o estoque por localização.
type LocationSummary struct {
	Location string `json:"location"`
	Items    int    `json:"items"`
	Quantity int    `json:"quantity"`
}

// Pagination define limite e deslocamento de listagens.
type Pagination struct {
	Limit  int
	Offset int
}
