// Package server wires the HTTP handlers into a ServeMux.
package server

import "net/http"

// SetupRoutes configures and returns the application mux: health
// check at the root, the WebSocket endpoint, and the test page.
func SetupRoutes(hub *Hub, cfg *Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.Handle("/ws", WebSocketHandler(hub, cfg))
	mux.HandleFunc("/test", TestPageHandler)
	return mux
}
