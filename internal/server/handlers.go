// Package server exposes the HTTP handlers: WebSocket upgrade, health
// check, and the built-in browser test page.
package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketHandler returns the handler that upgrades requests to
// WebSocket and hands the connection to the hub.
func WebSocketHandler(hub *Hub, cfg *Config) http.HandlerFunc {
	policy := newOriginPolicy(cfg.AllowedOrigins, hub.logger)
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     policy.check,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.",
				http.StatusMethodNotAllowed)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("websocket upgrade failed", "error", err)
			return
		}

		hub.register <- newClient(conn, hub, r.RemoteAddr, cfg.MaxMessageSize)
	}
}

// HealthHandler reports that the server is up.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Chat relay server is running!")
}

// TestPageHandler serves a minimal HTML page speaking the action
// protocol, for poking at the server from a browser.
func TestPageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Chat Relay Test</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        #log { border: 1px solid #ccc; height: 300px; padding: 10px; overflow-y: scroll; margin: 10px 0; background: #f9f9f9; }
        input[type="text"] { width: 240px; padding: 5px; margin-right: 6px; }
        button { padding: 5px 15px; }
    </style>
</head>
<body>
    <h1>Chat Relay Test</h1>
    <div>
        <input type="text" id="nickname" placeholder="Nickname">
        <button onclick="join()">Join</button>
        <button onclick="rename()">Rename</button>
        <button onclick="leave()">Leave</button>
    </div>
    <div>
        <input type="text" id="message" placeholder="Message">
        <button onclick="send()">Send</button>
    </div>
    <div id="log"></div>
    <script>
        const log = document.getElementById('log');
        const ws = new WebSocket('ws://' + location.host + '/ws');
        function append(text) {
            const line = document.createElement('div');
            line.textContent = text;
            log.appendChild(line);
            log.scrollTop = log.scrollHeight;
        }
        ws.onopen = () => append('connected');
        ws.onclose = () => append('disconnected');
        ws.onmessage = (e) => append(e.data);
        function push(obj) { ws.send(JSON.stringify(obj)); }
        function join() { push({action: 'joinChat', nickname: document.getElementById('nickname').value}); }
        function rename() { push({action: 'changeNickname', nickname: document.getElementById('nickname').value}); }
        function leave() { push({action: 'leaveChat'}); }
        function send() {
            push({action: 'sendChat', message: document.getElementById('message').value});
            document.getElementById('message').value = '';
        }
    </script>
</body>
</html>`
	_, _ = fmt.Fprint(w, html)
}
