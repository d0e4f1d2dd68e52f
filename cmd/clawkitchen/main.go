package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

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
	"github.com/JIGGAI/ClawKitchen/internal/web"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("clawkitchen %s\n", version)
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("serve failed", "error", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: clawkitchen <command>\n\nCommands:\n  serve      Start the ClawKitchen service\n  version    Print version\n")
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("starting clawkitchen", "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SQLite operation history
	hist, err := history.New(cfg.History)
	if err != nil {
		return fmt.Errorf("init history store: %w", err)
	}
	defer hist.Close()
	slog.Info("history store initialized", "path", cfg.History.Path)

	// Embedded NATS
	bus, err := natsbus.New(cfg.NATS)
	if err != nil {
		return fmt.Errorf("init nats: %w", err)
	}
	defer bus.Close()
	slog.Info("nats started", "port", cfg.NATS.Port)

	// CLI gateway and the services built on it
	gw := openclaw.New(cfg.OpenClaw.Bin)
	catalog := recipe.NewCatalog(gw)
	goals := goal.NewStore(gw)

	// Telegram notifier (nil and inert without a token)
	notifier, err := notify.New(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}
	if notifier == nil {
		slog.Warn("telegram token not set, notifications disabled")
	}

	deps := web.Deps{
		Invoker:  gw,
		Catalog:  catalog,
		Deleter:  recipe.NewDeleter(gw, catalog),
		Scaffold: scaffold.NewService(gw, scaffold.NewRecorder(gw, catalog)),
		Goals:    goals,
		Promoter: goal.NewPromoter(gw, goals, cfg.Promotion),
		Skills:   skills.NewService(gw),
		Cron:     cron.NewService(gw),
		History:  hist,
		Bus:      bus,
		Notifier: notifier,
	}

	if cfg.Web.Enabled {
		srv := web.NewServer(deps, cfg.Web, version)
		go func() {
			if err := srv.Start(ctx); err != nil {
				slog.Error("web server error", "error", err)
			}
		}()
		slog.Info("web server started", "port", cfg.Web.Port)
	} else {
		slog.Warn("web server disabled")
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig)
	cancel()

	return nil
}
