// Package server constructs and runs the HTTP listener with
// production timeouts and graceful shutdown.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// CreateServer builds an HTTP server for the given address and
// handler with sane timeout values.
func CreateServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartServer begins listening and blocks until the server exits.
func StartServer(server *http.Server) error {
	slog.Info("server listening", "addr", server.Addr)
	return server.ListenAndServe()
}

// ShutdownServer drains the HTTP server, waiting for in-flight
// requests up to the timeout.
func ShutdownServer(server *http.Server, timeout time.Duration) error {
	slog.Info("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown", "error", err)
		return err
	}

	slog.Info("http server shutdown complete")
	return nil
}
