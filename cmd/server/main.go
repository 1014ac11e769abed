package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZoneSix/ws-chat-server/internal/logging"
	"github.com/ZoneSix/ws-chat-server/internal/server"
)

func main() {
	cfg := server.LoadConfig()
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	hub := server.NewHub(server.WithLogger(logger))
	go hub.Run()

	mux := server.SetupRoutes(hub, cfg)
	httpServer := server.CreateServer(cfg.Addr(), mux)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.StartServer(httpServer)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("received shutdown signal", "signal", sig.String())
	}

	if err := server.ShutdownServer(httpServer, cfg.ShutdownTimeout); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	if err := hub.Shutdown(cfg.ShutdownTimeout); err != nil {
		logger.Error("hub shutdown incomplete", "error", err)
	}
}
