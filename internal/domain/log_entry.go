package domain

import "time"

// SystemActor é o autor dos registros gerados pelo próprio sistema.
const SystemActor = "system"

// LogEntry é um registro de auditoria imutável de uma ação que alterou dados.
type LogEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"user"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Message   string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityType classifica um registro para o feed do dashboard.
type ActivityType string

const (
	ActivityAdd     ActivityType = "add"
	ActivityDelete  ActivityType = "delete"
	ActivityUpdate  ActivityType = "update"
	ActivityRestock ActivityType = "restock"
)

// Activity é a visão de um LogEntry no feed de atividades recentes.
type Activity struct {
	ID        string       `json:"id"`
	User      string       `json:"user"`
	Action    string       `json:"action"`
	Type      ActivityType `json:"type"`
	Timestamp string       `json:"timestamp"`
}
