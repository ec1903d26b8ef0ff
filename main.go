package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/minbar-translate/backend/internal/api"
	"github.com/minbar-translate/backend/internal/auth"
	"github.com/minbar-translate/backend/internal/config"
	"github.com/minbar-translate/backend/internal/session"
	"github.com/minbar-translate/backend/internal/translate"
)

func main() {
	cfg := config.Load()

	// Translation engines (at least one credential is guaranteed by config)
	svc := translate.NewService(cfg.OpenAIKey, cfg.OpenAIModel, cfg.GeminiKey, cfg.GeminiModel, cfg.DefaultEngine)
	log.Printf("Translation engines: [%s], default %s", strings.Join(svc.Engines(), ", "), svc.Default())

	// In-memory session state
	store := session.NewStore(cfg.SessionTTL)

	// Session token service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(svc, store, jwtService, cfg)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
