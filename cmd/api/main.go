package main

import (
	"context"
	"errors"
	"log"

	"github.com/farxc/folha-assistente/internal/chat"
	"github.com/farxc/folha-assistente/internal/db"
	"github.com/farxc/folha-assistente/internal/env"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/metrics"
	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/session"
	"github.com/farxc/folha-assistente/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	const component = "Main"

	if err := env.Load(); err != nil {
		log.Fatalf("failed to read .env: %v", err)
	}

	cfg := config{
		addr: env.GetString("ADDR", ":8080"),
		payroll: payrollConfig{
			csvPath:  env.GetString("PAYROLL_CSV", "data/payroll.csv"),
			encoding: env.GetString("PAYROLL_CSV_ENCODING", "auto"),
		},
		db: dbConfig{
			addr:         env.GetString("DB_ADDR", ""),
			maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		router: chat.RouterConfig{
			OpenAIKey:            env.GetString("OPENAI_API_KEY", ""),
			OpenAIModel:          env.GetString("OPENAI_MODEL", "gpt-4o-mini"),
			LLMRequestsPerMinute: env.GetInt("LLM_REQUESTS_PER_MINUTE", 60),
			GoogleAPIKey:         env.GetString("GOOGLE_API_KEY", ""),
			GoogleEngineID:       env.GetString("GOOGLE_SEARCH_ENGINE_ID", ""),
			DependencyTimeout:    env.GetDuration("DEPENDENCY_TIMEOUT", intentTimeout),
			VocabularyFile:       env.GetString("INTENT_VOCABULARY_FILE", ""),
		},
		sessions: sessionConfig{
			ttl:         env.GetDuration("SESSION_TTL", sessionTTL),
			maxSessions: env.GetInt("SESSION_MAX", 100),
			maxMessages: env.GetInt("SESSION_MAX_MESSAGES", 50),
		},
		logLevel: env.GetString("LOG_LEVEL", "info"),
	}

	appLogger, err := logger.New(logger.ParseLevel(cfg.logLevel))
	if err != nil {
		log.Fatal(err)
	}
	defer appLogger.Sync()

	enc, err := files.ParseEncoding(cfg.payroll.encoding)
	if err != nil {
		appLogger.Fatal(component, "Invalid PAYROLL_CSV_ENCODING: %v", err)
	}

	var storage *store.Storage
	if cfg.db.addr != "" {
		conn, err := db.New(
			cfg.db.addr,
			cfg.db.maxOpenConns,
			cfg.db.maxIdleConns,
			cfg.db.maxIdleTime)
		if err != nil {
			appLogger.Fatal(component, "Failed to connect to database: %v", err)
		}
		defer conn.Close()
		appLogger.Info(component, "Database connection pool established")

		storage = store.NewStorage(conn)
		if err := storage.Interactions.EnsureSchema(context.Background()); err != nil {
			appLogger.Fatal(component, "Failed to prepare interaction history: %v", err)
		}
	} else {
		appLogger.Warn(component, "DB_ADDR not set, interaction history disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	holder := tabular.NewHolder()
	go loadPayroll(holder, cfg.payroll.csvPath, enc, m, appLogger)

	router, err := chat.NewRouter(holder, cfg.router, appLogger)
	if err != nil {
		appLogger.Fatal(component, "Failed to build intent router: %v", err)
	}
	sessions := session.NewMemory(cfg.sessions.ttl, cfg.sessions.maxSessions, cfg.sessions.maxMessages)

	app := &application{
		config:   cfg,
		chat:     chat.NewService(router, sessions, storage, m, appLogger),
		holder:   holder,
		store:    storage,
		gatherer: prometheus.DefaultGatherer,
		logger:   appLogger,
	}

	mux := app.mount()

	appLogger.Fatal(component, "Server stopped: %v", app.run(mux))
}

// loadPayroll fills holder in the background. A file that violates the
// schema stops the process: answering from partial data is not an option.
func loadPayroll(holder *tabular.Holder, path string, enc files.Encoding, m *metrics.Metrics, appLogger *logger.Logger) {
	const component = "PayrollLoader"

	appLogger.Info(component, "Loading payroll dataset: path=%s encoding=%s", path, enc)
	s, err := holder.Load(func() (*tabular.Store, error) {
		return tabular.LoadFile(path, enc)
	})
	if err != nil {
		var schemaErr *tabular.SchemaError
		if errors.As(err, &schemaErr) {
			appLogger.Fatal(component, "Payroll dataset rejected: %v", schemaErr)
		}
		appLogger.Fatal(component, "Failed to load payroll dataset: %v", err)
	}

	m.SetDatasetRecords(s.Len())
	appLogger.Info(component, "Payroll dataset ready: records=%d employees=%d", s.Len(), len(s.Employees()))
}
