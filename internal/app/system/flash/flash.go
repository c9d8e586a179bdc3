// internal/app/system/flash/flash.go

// Package flash stores one-shot messages in a signed cookie session, shown on
// the page after a redirect and then discarded.
package flash

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Store reads and writes flash messages.
type Store struct {
	name  string
	store *sessions.CookieStore
	log   *zap.Logger
}

// New returns a Store signing its cookie with key. An empty key gets a random
// one, which is fine for development but invalidates cookies on restart.
func New(name string, key []byte, secure bool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(key) == 0 {
		logger.Warn("no session key configured; using a random key for this process")
		key = securecookie.GenerateRandomKey(32)
	}

	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{name: name, store: cs, log: logger}
}

// Add queues msg for the next page the client loads.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msg string) error {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		// A cookie signed with an old key; start over with a fresh session.
		s.log.Debug("discarding unreadable flash session", zap.Error(err))
	}
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("flash: save: %w", err)
	}
	return nil
}

// Pop returns and clears the queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []string {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash: save after pop failed", zap.Error(err))
	}

	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
