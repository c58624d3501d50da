package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nanawalke/voter-search/balancer"
	"github.com/nanawalke/voter-search/cliparse"
	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/loader"
	"github.com/nanawalke/voter-search/middleware"
	"github.com/nanawalke/voter-search/router"
	"github.com/nanawalke/voter-search/session"
	"github.com/nanawalke/voter-search/updater"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	strategy, err := balancer.ParseStrategy(cfg.Strategy)
	if err != nil {
		slog.Error("Error parsing load strategy", "error", err)
		os.Exit(1)
	}

	// Wire the data and messaging layers
	lb := balancer.New(cfg.DataEndpoints, strategy)
	ld := loader.New(lb)
	d := dispatch.New(cfg.GatewayEndpoints, cfg.PhoneNumberID, cfg.APIKey)
	up := updater.New(cfg.UpdateURL)
	sess := session.New(ld, d)
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background endpoint probing
	go lb.Run(ctx)

	// Initial data load; the server starts serving while it runs
	go func() {
		count, err := sess.Reload(ctx)
		if err != nil {
			slog.Error("initial data load failed", "error", err)
			return
		}
		slog.Info("initial data load complete", "records", count)
	}()

	// Create router
	mux := router.NewRouter(sess, lb, d, up, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "data_endpoints", len(cfg.DataEndpoints), "strategy", cfg.Strategy)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
