package router

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "medstock/docs" // registra o documento OpenAPI no swag

	"medstock/internal/api/activity"
	"medstock/internal/api/chat"
	"medstock/internal/api/inventory"
	"medstock/internal/api/respond"
	"medstock/internal/api/user"
	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
	"medstock/internal/pkg/middleware"
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Inventory *inventory.Handler
	Activity  *activity.Handler
	User      *user.Handler
	Chat      *chat.Handler
}

// Options configura os middlewares aplicados pelo roteador.
type Options struct {
	// Auth protege as rotas de escrita; nil deixa todas abertas.
	Auth func(http.Handler) http.Handler
	// ChatLimiter limita POST /ai/chat; nil desativa.
	ChatLimiter    func(http.Handler) http.Handler
	Metrics        *middleware.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	Logger         logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// As rotas respondem na raiz e também sob /api.
func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, handler http.Handler, wrap ...func(http.Handler) http.Handler) {
		for _, mw := range wrap {
			if mw != nil {
				handler = mw(handler)
			}
		}
		if opts.Metrics != nil {
			handler = opts.Metrics.Instrument(pattern, handler)
		}
		mux.Handle(pattern, handler)
	}

	// --- 1. Health Check ---
	handle("GET /health", http.HandlerFunc(HealthHandler))
	handle("GET /ping", http.HandlerFunc(PingHandler))

	// --- 2. Estoque ---
	handle("GET /inventory/summary", http.HandlerFunc(h.Inventory.SummaryHandler))
	handle("GET /inventory/locations", http.HandlerFunc(h.Inventory.LocationsHandler))
	handle("GET /inventory", http.HandlerFunc(h.Inventory.ListHandler))
	handle("POST /inventory/add", http.HandlerFunc(h.Inventory.AddHandler), opts.Auth)
	handle("POST /inventory/remove", http.HandlerFunc(h.Inventory.RemoveHandler), opts.Auth)

	// --- 3. Atividades ---
	handle("GET /activity/recent", http.HandlerFunc(h.Activity.RecentHandler))

	// --- 4. Autenticação e histórico ---
	handle("POST /auth/login", http.HandlerFunc(h.User.LoginUserHandler))
	handle("POST /auth/register", http.HandlerFunc(h.User.RegisterUserHandler))
	handle("GET /users/{id}/history", http.HandlerFunc(h.User.HistoryHandler), opts.Auth)
	handle("POST /users/{id}/history", http.HandlerFunc(h.User.AppendHistoryHandler), opts.Auth)

	// --- 5. Assistente ---
	handle("POST /ai/chat", http.HandlerFunc(h.Chat.ChatHandler), opts.ChatLimiter)

	// --- 6. Operação ---
	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	root := http.NewServeMux()
	root.Handle("/", mux)
	root.Handle("/api/", http.StripPrefix("/api", mux))

	// --- 7. Middlewares Globais ---
	var handler http.Handler = root
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	if opts.Logger != nil {
		handler = middleware.RequestLogger(opts.Logger)(handler)
	}
	return handler
}

// HealthHandler responde GET /health.
// @Summary Verifica se o servidor está no ar
// @Tags health
// @Produce json
// @Success 200 {object} domain.HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = respond.JSON(w, http.StatusOK, domain.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
