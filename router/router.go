// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/nanawalke/voter-search/balancer"
	"github.com/nanawalke/voter-search/cliparse"
	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/handlers"
	"github.com/nanawalke/voter-search/middleware"
	"github.com/nanawalke/voter-search/session"
	"github.com/nanawalke/voter-search/updater"
)

func NewRouter(sess *session.Session, lb *balancer.LoadBalancer, d *dispatch.Dispatcher, up *updater.Client, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(sess, lb, up)
	messageHandler := handlers.NewMessageHandler(sess, d)
	gatewayHandler := handlers.NewGatewayHandler(cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter data operations
	mux.HandleFunc("GET /api/voters/search", middleware.WithLogging(voterHandler.Search))
	mux.HandleFunc("GET /api/voters/suggest", middleware.WithLogging(voterHandler.Suggest))
	mux.HandleFunc("GET /api/voters/stats", middleware.WithLogging(voterHandler.Stats))
	mux.HandleFunc("GET /api/voters/history", middleware.WithLogging(voterHandler.History))
	mux.HandleFunc("POST /api/voters/reload", middleware.WithLogging(voterHandler.Reload))
	mux.HandleFunc("POST /api/voters/update", middleware.WithLogging(voterHandler.Update))

	// Data endpoint health
	mux.HandleFunc("GET /api/endpoints/health", middleware.WithLogging(voterHandler.EndpointsHealth))

	// Messaging operations
	mux.HandleFunc("POST /api/messages/send", middleware.WithLogging(messageHandler.Send))
	mux.HandleFunc("GET /api/messages/autosend", middleware.WithLogging(messageHandler.AutoSendStatus))

	// Embedded WhatsApp gateway
	mux.HandleFunc("POST /api/whatsapp-send", middleware.WithLogging(gatewayHandler.WhatsAppSend))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voter-search API v1"))
	})

	return mux
}
