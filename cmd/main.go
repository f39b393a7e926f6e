package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	// Nossos pacotes de infraestrutura e utilitários
	"medstock/config"
	"medstock/internal/pkg/cache"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/llm"
	"medstock/internal/pkg/logger"
	"medstock/internal/pkg/middleware"
	"medstock/internal/pkg/token"
	"medstock/migrations"

	// Camadas para Injeção de Dependências
	"medstock/internal/api/activity"
	"medstock/internal/api/chat"
	"medstock/internal/api/inventory"
	"medstock/internal/api/router"
	"medstock/internal/api/user"
	"medstock/internal/repository/inventoryrepo"
	"medstock/internal/repository/logrepo"
	"medstock/internal/repository/userrepo"
	"medstock/internal/service/activityservice"
	"medstock/internal/service/chatservice"
	"medstock/internal/service/inventoryservice"
	"medstock/internal/service/userservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	log.Println("⚡ Inicializando serviço MedStock...")
	if err := godotenv.Load(); err != nil {
		// As variáveis podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "db_driver": cfg.DBDriver})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados
	db, err := database.Open(database.Options{
		Driver:      cfg.DBDriver,
		URL:         cfg.DatabaseURL,
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		PingTimeout: cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão com o banco de dados estabelecida.", map[string]interface{}{"dialect": db.Dialect.Name})

	// Em SQLite o arquivo costuma ser criado na hora; aplicamos o schema na subida.
	if db.Dialect.Name == database.DialectSQLite {
		if err := migrations.Up(db.DB, db.Dialect.GooseDialect); err != nil {
			log.Fatal("Falha ao aplicar migrações no SQLite.", err)
		}
		log.Info("Migrações aplicadas.", nil)
	}

	// B. Cache (Redis) opcional
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Warn("Redis indisponível; cache de resumo e rate limiting desativados.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			defer redisClient.Close()
			cacheClient = redisClient
			log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		}
	}

	// C. Métricas
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	logRepo := logrepo.NewLogRepository(db, cfg.DBTimeout, log)
	inventoryRepo := inventoryrepo.NewInventoryRepository(db, cfg.DBTimeout, logRepo, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, logRepo, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Clientes externos
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	modelClient := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLMBaseURL,
		Timeout:     cfg.LLMTimeout,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}, reg)

	// C. Serviços
	inventorySvc := inventoryservice.NewService(inventoryRepo, logRepo, cacheClient, cfg.SummaryCacheTTL, log)
	activitySvc := activityservice.NewService(logRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	chatSvc := chatservice.NewService(inventoryRepo, modelClient, chatservice.Config{
		DefaultModel: cfg.LLMModel,
		Mode:         cfg.LLMMode,
		HistoryTurns: cfg.HistoryTurns,
	}, log)
	log.Debug("Serviços inicializados.", nil)

	// D. Handlers
	handlers := router.Handlers{
		Inventory: inventory.NewHandler(inventorySvc, log),
		Activity:  activity.NewHandler(activitySvc, log),
		User:      user.NewHandler(userSvc, log),
		Chat:      chat.NewHandler(chatSvc, log),
	}

	// 4. Configuração e Início do Roteador/Servidor
	opts := router.Options{
		Auth:           middleware.NewAuthMiddleware(tokenSvc, cfg.AuthRequired, log),
		Metrics:        middleware.NewMetrics(reg),
		Gatherer:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	}
	if cacheClient != nil {
		opts.ChatLimiter = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)
	}

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router.NewRouter(handlers, opts),
		ReadTimeout: 10 * time.Second,
		// A rota de chat espera o modelo; a escrita precisa de folga além desse prazo.
		WriteTimeout: cfg.LLMTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor MedStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
