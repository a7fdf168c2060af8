package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/floorcast/floorcast/backend-go/internal/auth"
	"github.com/floorcast/floorcast/backend-go/internal/config"
	"github.com/floorcast/floorcast/backend-go/internal/db"
	"github.com/floorcast/floorcast/backend-go/internal/export"
	mw "github.com/floorcast/floorcast/backend-go/internal/middleware"
	"github.com/floorcast/floorcast/backend-go/internal/notify"
	"github.com/floorcast/floorcast/backend-go/internal/plan"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	authService := auth.NewService(store, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	archive := export.NewArchive(cfg.ExportDir)
	exportHandler := export.NewHandler(archive)

	hub := notify.NewHub()
	go hub.Run()

	planService := plan.NewService(store)
	planHandler := plan.NewHandler(planService, archive, hub)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Stateless conversion endpoint (public, callers post a scene document
	// and get the GeoJSON bundle straight back)
	r.HandleFunc("/export/geojson", exportHandler.Convert).Methods("POST", "OPTIONS")

	// Archived export downloads
	r.PathPrefix("/exports/").Handler(archive.Serve()).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/plans", planHandler.List).Methods("GET")
	api.HandleFunc("/plans", planHandler.Create).Methods("POST")
	api.HandleFunc("/plans/{planId}", planHandler.Get).Methods("GET")
	api.HandleFunc("/plans/{planId}", planHandler.Delete).Methods("DELETE")
	api.HandleFunc("/plans/{planId}/snapshots/latest", planHandler.GetLatestDocument).Methods("GET")
	api.HandleFunc("/plans/{planId}/snapshots", planHandler.SaveSnapshot).Methods("POST")
	api.HandleFunc("/plans/{planId}/export", planHandler.Export).Methods("POST")

	// WebSocket endpoint for export progress
	r.HandleFunc("/ws/plans/{planId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, cfg.AllowedOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *notify.Hub, authSvc *auth.Service, allowedOrigins string) {
	planID := mux.Vars(r)["planId"]

	// Auth via query param; browsers cannot set headers on websocket upgrades
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(allowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := notify.NewClient(hub, conn, userID, planID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips scheme prefixes from the configured origin list;
// websocket.AcceptOptions matches on host patterns, not full origins.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		origin = strings.TrimPrefix(origin, "http://")
		origin = strings.TrimPrefix(origin, "https://")
		if origin != "" {
			patterns = append(patterns, origin)
		}
	}
	return patterns
}
