// Package web exposes the HTTP API over the recipe, scaffold, goal and cron
// services, and streams lifecycle events to connected UIs over WebSocket.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/JIGGAI/ClawKitchen/internal/config"
	"github.com/JIGGAI/ClawKitchen/internal/cron"
	"github.com/JIGGAI/ClawKitchen/internal/goal"
	"github.com/JIGGAI/ClawKitchen/internal/history"
	"github.com/JIGGAI/ClawKitchen/internal/natsbus"
	"github.com/JIGGAI/ClawKitchen/internal/notify"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/recipe"
	"github.com/JIGGAI/ClawKitchen/internal/scaffold"
	"github.com/JIGGAI/ClawKitchen/internal/skills"
)

type Server struct {
	inv       openclaw.Invoker
	catalog   *recipe.Catalog
	deleter   *recipe.Deleter
	scaffold  *scaffold.Service
	goals     *goal.Store
	promoter  *goal.Promoter
	skills    *skills.Service
	cron      *cron.Service
	history   *history.Store
	bus       *natsbus.Bus
	events    *natsbus.Client
	notifier  *notify.Notifier
	hub       *Hub
	cfg       config.WebConfig
	version   string
	startedAt time.Time
}

// Deps collects the services the server routes to. All fields except Invoker
// and Catalog may be nil; handlers for missing services report 503.
type Deps struct {
	Invoker  openclaw.Invoker
	Catalog  *recipe.Catalog
	Deleter  *recipe.Deleter
	Scaffold *scaffold.Service
	Goals    *goal.Store
	Promoter *goal.Promoter
	Skills   *skills.Service
	Cron     *cron.Service
	History  *history.Store
	Bus      *natsbus.Bus
	Notifier *notify.Notifier
}

func NewServer(deps Deps, cfg config.WebConfig, version string) *Server {
	return &Server{
		inv:       deps.Invoker,
		catalog:   deps.Catalog,
		deleter:   deps.Deleter,
		scaffold:  deps.Scaffold,
		goals:     deps.Goals,
		promoter:  deps.Promoter,
		skills:    deps.Skills,
		cron:      deps.Cron,
		history:   deps.History,
		bus:       deps.Bus,
		notifier:  deps.Notifier,
		hub:       NewHub(),
		cfg:       cfg,
		version:   version,
		startedAt: time.Now(),
	}
}

func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	// Subscribe to NATS events and broadcast to WebSocket
	s.subscribeEvents()

	mux := http.NewServeMux()
	s.registerAPI(mux)
	mux.HandleFunc("/api/ws", s.handleWebSocket)

	handler := s.withMiddleware(mux)
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	server := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	slog.Info("web server listening", "addr", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// publishEvent pushes a lifecycle event to the bus. Event delivery never
// affects the request that triggered it.
func (s *Server) publishEvent(topic, subject string, detail map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(topic, subject, detail); err != nil {
		slog.Warn("event publish failed", "topic", topic, "error", err)
	}
}

// recordHistory appends an operation record. Best-effort.
func (s *Server) recordHistory(e *history.Entry) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(e); err != nil {
		slog.Warn("history append failed", "kind", e.Kind, "error", err)
	}
}

func (s *Server) subscribeEvents() {
	if s.bus == nil {
		return
	}
	client, err := natsbus.NewClient(s.bus)
	if err != nil {
		slog.Error("web server nats client failed", "error", err)
		return
	}
	s.events = client

	// Forward all event topics to WebSocket as envelopes
	_, _ = client.Subscribe(natsbus.TopicEventsAll, func(msg *nats.Msg) {
		var event natsbus.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			slog.Warn("invalid NATS event payload", "error", err)
			return
		}
		s.hub.Broadcast(event)
	})
}
