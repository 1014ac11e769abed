// Package server normalizes and validates HTTP origins for WebSocket
// upgrade requests.
package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// originPolicy decides which Origin headers may upgrade to a
// WebSocket. Origins are normalized to scheme://host before
// comparison; a configured "*" allows everything.
type originPolicy struct {
	allowAll bool
	allowed  map[string]struct{}
	logger   *slog.Logger
}

func newOriginPolicy(origins []string, logger *slog.Logger) *originPolicy {
	p := &originPolicy{
		allowed: make(map[string]struct{}, len(origins)),
		logger:  logger,
	}

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			p.allowAll = true
			continue
		}

		normalized, ok := normalizeOrigin(trimmed)
		if !ok {
			logger.Warn("ignoring invalid origin in configuration", "origin", origin)
			continue
		}
		p.allowed[normalized] = struct{}{}
	}

	return p
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}

func (p *originPolicy) check(r *http.Request) bool {
	originHeader := r.Header.Get("Origin")
	if originHeader == "" {
		p.logger.Warn("blocked WebSocket connection without origin header")
		return false
	}

	normalized, ok := normalizeOrigin(originHeader)
	if !ok {
		p.logger.Warn("blocked WebSocket connection with malformed origin", "origin", originHeader)
		return false
	}

	if p.allowAll {
		return true
	}
	if _, exists := p.allowed[normalized]; exists {
		return true
	}

	p.logger.Warn("blocked WebSocket connection from disallowed origin", "origin", originHeader)
	return false
}
