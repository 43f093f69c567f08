package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/handler"
)

type stubSessions struct {
	tokens  map[string]string
	lookups int
}

func (s *stubSessions) UserIDForToken(_ context.Context, token string) (string, error) {
	s.lookups++
	userID, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrSessionInvalid
	}
	return userID, nil
}

func TestAuthMiddleware(t *testing.T) {
	sessions := &stubSessions{tokens: map[string]string{"good-token": "user-1"}}
	cache := NewSessionCache(SessionCacheSize, SessionCacheTTL)
	detector := NewSuspiciousActivityDetector()
	middleware := AuthMiddleware(sessions, cache, nil, detector)

	tests := []struct {
		name           string
		authHeader     string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid bearer token",
			authHeader:     "Bearer good-token",
			path:           "/api/v1/character",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown token",
			authHeader:     "Bearer bad-token",
			path:           "/api/v1/character",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing header",
			authHeader:     "",
			path:           "/api/v1/character",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			authHeader:     "Basic good-token",
			path:           "/api/v1/character",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Public Path - Healthz",
			authHeader:     "",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Metrics",
			authHeader:     "",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set(HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()

			h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			h.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAuthMiddlewareInjectsUserID(t *testing.T) {
	sessions := &stubSessions{tokens: map[string]string{"good-token": "user-1"}}
	cache := NewSessionCache(SessionCacheSize, SessionCacheTTL)
	middleware := AuthMiddleware(sessions, cache, nil, NewSuspiciousActivityDetector())

	var gotUserID string
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = handler.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/character", nil)
	req.Header.Set(HeaderAuthorization, "Bearer good-token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotUserID != "user-1" {
		t.Errorf("expected user-1 in context, got %q", gotUserID)
	}
}

func TestAuthMiddlewareCachesLookups(t *testing.T) {
	sessions := &stubSessions{tokens: map[string]string{"good-token": "user-1"}}
	cache := NewSessionCache(8, time.Minute)
	middleware := AuthMiddleware(sessions, cache, nil, NewSuspiciousActivityDetector())

	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/character", nil)
		req.Header.Set(HeaderAuthorization, "Bearer good-token")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if sessions.lookups != 1 {
		t.Errorf("expected 1 store lookup, got %d", sessions.lookups)
	}
}

func TestAuthMiddlewareDoesNotCacheFailures(t *testing.T) {
	sessions := &stubSessions{tokens: map[string]string{}}
	cache := NewSessionCache(8, time.Minute)
	middleware := AuthMiddleware(sessions, cache, nil, NewSuspiciousActivityDetector())

	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/v1/character", nil)
		req.Header.Set(HeaderAuthorization, "Bearer bad-token")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if sessions.lookups != 2 {
		t.Errorf("expected every failed token to hit the store, got %d lookups", sessions.lookups)
	}
}
