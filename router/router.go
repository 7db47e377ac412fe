// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/livetally/aggregator"
	"github.com/danielhkuo/livetally/cliparse"
	"github.com/danielhkuo/livetally/handlers"
	"github.com/danielhkuo/livetally/middleware"
	"github.com/danielhkuo/livetally/realtime"
	"github.com/danielhkuo/livetally/store"
)

// NewRouter wires the store, aggregator, hub and handlers onto a mux.
// The returned hub must be closed on shutdown.
func NewRouter(db *sql.DB, cfg cliparse.Config) (http.Handler, *realtime.Hub) {
	pollStore := store.New(db)
	agg := aggregator.New(pollStore)
	hub := realtime.NewHub(agg, cfg)

	pollHandler := handlers.NewPollHandler(pollStore)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Realtime channel
	mux.HandleFunc("GET /ws", hub.ServeWS)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livetally API v1"))
	})

	return middleware.CORS(cfg.AllowedOrigin, mux), hub
}
