package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPolicy(origins ...string) *originPolicy {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newOriginPolicy(origins, logger)
}

func requestWithOrigin(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestOriginPolicyAllowsConfiguredOrigin(t *testing.T) {
	policy := newTestPolicy("http://localhost:8080")

	assert.True(t, policy.check(requestWithOrigin("http://localhost:8080")))
}

func TestOriginPolicyNormalizesCase(t *testing.T) {
	policy := newTestPolicy("http://localhost:8080")

	assert.True(t, policy.check(requestWithOrigin("HTTP://LocalHost:8080")))
}

func TestOriginPolicyBlocksUnlistedOrigin(t *testing.T) {
	policy := newTestPolicy("http://localhost:8080")

	assert.False(t, policy.check(requestWithOrigin("http://evil.example")))
}

func TestOriginPolicyBlocksMissingOrigin(t *testing.T) {
	policy := newTestPolicy("http://localhost:8080")

	assert.False(t, policy.check(requestWithOrigin("")))
}

func TestOriginPolicyWildcardAllowsEverything(t *testing.T) {
	policy := newTestPolicy("*")

	assert.True(t, policy.check(requestWithOrigin("http://anywhere.example")))
	assert.False(t, policy.check(requestWithOrigin("")), "wildcard still requires an origin header")
}

func TestOriginPolicyIgnoresInvalidConfigEntries(t *testing.T) {
	policy := newTestPolicy("not a url", "", "http://ok.example")

	assert.True(t, policy.check(requestWithOrigin("http://ok.example")))
	assert.False(t, policy.check(requestWithOrigin("http://not-a-url")))
}
