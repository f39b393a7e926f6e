package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config armazena todas as configurações do MedStock.
// É construída uma única vez no main.go e passada aos construtores; não muda depois disso.
type Config struct {
	// Geral
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	// Banco de Dados
	DBDriver     string // postgres | mysql | sqlite
	DatabaseURL  string
	DBTimeout    time.Duration
	DBMaxOpen    int
	DBMaxIdle    int
	MigrationDir string

	// Cache (Redis). Vazio desativa cache de resumo e rate limiting.
	RedisAddr       string
	CacheTimeout    time.Duration
	SummaryCacheTTL time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration
	AuthRequired bool

	// Rate Limiting (rota de chat)
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Modelo de linguagem (Ollama)
	LLMBaseURL     string
	LLMModel       string
	LLMMode        string // chat | generate
	LLMTimeout     time.Duration
	LLMTemperature float64
	LLMMaxTokens   int
	HistoryTurns   int
}

// fileConfig é o formato do arquivo YAML opcional (CONFIG_FILE).
// Valores do arquivo servem de padrão; variáveis de ambiente sempre vencem.
type fileConfig struct {
	Port           string   `yaml:"port"`
	Environment    string   `yaml:"environment"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Database       struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`
	LLM struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
		Mode    string `yaml:"mode"`
	} `yaml:"llm"`
}

// LoadConfig carrega as configurações e encerra o processo se estiverem inválidas.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	return cfg
}

// Load monta a Config a partir de padrões, do arquivo opcional e do ambiente.
func Load() (*Config, error) {
	file := loadFile(os.Getenv("CONFIG_FILE"))

	cfg := &Config{
		// 1. Geral
		Port:           getEnv("PORT", or(file.Port, "8000")),
		Environment:    getEnv("ENV", or(file.Environment, "development")),
		LogLevel:       getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		AllowedOrigins: getListEnv("ALLOWED_ORIGINS", orList(file.AllowedOrigins, []string{"http://localhost:5173", "http://localhost:3000"})),

		// 2. Banco de Dados
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", or(file.Database.Driver, "postgres"))),
		DatabaseURL:  getEnv("DATABASE_URL", file.Database.URL),
		DBTimeout:    getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		DBMaxOpen:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdle:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
		MigrationDir: getEnv("MIGRATION_DIR", ""),

		// 3. Cache (Redis)
		RedisAddr:       getEnv("REDIS_ADDR", file.Redis.Addr),
		CacheTimeout:    getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		SummaryCacheTTL: getDurationEnv("SUMMARY_CACHE_TTL_SEC", 30) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,
		AuthRequired: getBoolEnv("AUTH_REQUIRED", false),

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 20),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Modelo de linguagem
		LLMBaseURL:     getEnv("LLM_BASE_URL", or(file.LLM.BaseURL, "http://127.0.0.1:11434")),
		LLMModel:       getEnv("LLM_MODEL", or(file.LLM.Model, "medllama2:latest")),
		LLMMode:        strings.ToLower(getEnv("LLM_MODE", or(file.LLM.Mode, "chat"))),
		LLMTimeout:     getDurationEnv("LLM_TIMEOUT_SEC", 120) * time.Second,
		LLMTemperature: getFloatEnv("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:   getIntEnv("LLM_NUM_PREDICT", 400),
		HistoryTurns:   getIntEnv("CHAT_HISTORY_TURNS", 8),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate garante que a aplicação não inicie sem os valores essenciais.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL deve ser definida"))
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER inválido: %q", c.DBDriver))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY deve ser definida"))
	}
	switch c.LLMMode {
	case "chat", "generate":
	default:
		errs = append(errs, fmt.Errorf("LLM_MODE inválido: %q", c.LLMMode))
	}
	if c.HistoryTurns < 0 {
		errs = append(errs, errors.New("CHAT_HISTORY_TURNS não pode ser negativo"))
	}
	return errors.Join(errs...)
}

// Funções Helpers (Auxiliares)

// loadFile lê o arquivo YAML opcional. Arquivo ausente ou malformado é apenas avisado.
func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️ Aviso: arquivo de configuração %s não pôde ser lido: %v", path, err)
		return fileConfig{}
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Printf("⚠️ Aviso: arquivo de configuração %s malformado, ignorando: %v", path, err)
		return fileConfig{}
	}
	return fc
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orList(value, fallback []string) []string {
	if len(value) > 0 {
		return value
	}
	return fallback
}

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getListEnv lê uma lista separada por vírgulas.
func getListEnv(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número válido. Usando padrão (%v).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%v).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
