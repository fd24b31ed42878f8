package main

import (
	"net/http"
	"time"

	"github.com/farxc/folha-assistente/internal/chat"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

type application struct {
	config   config
	chat     *chat.Service
	holder   *tabular.Holder
	store    *store.Storage
	gatherer prometheus.Gatherer
	logger   *logger.Logger
}

type config struct {
	addr     string
	payroll  payrollConfig
	db       dbConfig
	router   chat.RouterConfig
	sessions sessionConfig
	logLevel string
}

type payrollConfig struct {
	csvPath  string
	encoding string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type sessionConfig struct {
	ttl         time.Duration
	maxSessions int
	maxMessages int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Delegated calls have their own deadline; this one bounds the whole
	// request.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Assistente de folha de pagamento"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/examples", app.handleGetExamples)
		r.Route("/chat", func(r chi.Router) {
			r.Post("/", app.handleChat)
			r.Post("/{session_id}", app.handleChat)
		})
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/stats", app.handleGetSessionStats)
			r.Get("/{session_id}/context", app.handleGetSessionContext)
			r.Delete("/{session_id}", app.handleDeleteSession)
		})
		r.Route("/interactions", func(r chi.Router) {
			r.Get("/history", app.handleGetInteractionHistory)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	const component = "API"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info(component, "Server started: addr=%s", app.config.addr)
	return srv.ListenAndServe()
}
