// Package flash keeps one-shot user notifications between a mutation and the
// page rendered after its redirect.
package flash

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "directory_session"

type Store interface {
	Add(ctx context.Context, sessionID, message string) error
	// Pop returns and clears every pending message for the session.
	Pop(ctx context.Context, sessionID string) ([]string, error)
}

type contextKey struct{}

// Middleware makes sure every request carries a session id cookie and puts
// the id on the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, sid)))
	})
}

// SessionID returns the id placed by Middleware, or "" outside it.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(contextKey{}).(string)
	return sid
}

type MemoryStore struct {
	mu       sync.Mutex
	messages map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string][]string)}
}

func (s *MemoryStore) Add(_ context.Context, sessionID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[sessionID] = append(s.messages[sessionID], message)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[sessionID]
	delete(s.messages, sessionID)
	return msgs, nil
}

// ttlOrDefault keeps unread messages from living forever.
func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 10 * time.Minute
	}
	return ttl
}
