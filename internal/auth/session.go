package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/freshmandiapp/freshmandi/internal/address"
	"github.com/freshmandiapp/freshmandi/internal/kv"
)

const (
	sessionStoreKey = "authSession"
	sessionTTL      = 30 * 24 * time.Hour
)

// Session is the logged-in state kept on the device.
type Session struct {
	UserKey   string `json:"userKey"`
	Phone     string `json:"phone"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
}

// SessionManager persists the login session in the device store. Like the
// other local caches it fails soft: an unreadable session means the user is
// browsing as a guest, never an error.
type SessionManager struct {
	kv     kv.Provider
	logger *slog.Logger
	now    func() time.Time
}

func NewSessionManager(provider kv.Provider, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		kv:     provider,
		logger: logger,
		now:    time.Now,
	}
}

// Save stores the session. A persistence failure is logged and swallowed;
// the in-memory session stays valid for the rest of the run.
func (m *SessionManager) Save(ctx context.Context, s Session) Session {
	s.CreatedAt = m.now().Unix()

	raw, err := json.Marshal(s)
	if err != nil {
		m.warn("encode session", err)
		return s
	}
	if err := m.kv.Set(ctx, sessionStoreKey, string(raw)); err != nil {
		m.warn("write session", err)
	}
	return s
}

// Current returns the stored session, or nil when absent, unreadable or
// older than the session TTL.
func (m *SessionManager) Current(ctx context.Context) *Session {
	raw, err := m.kv.Get(ctx, sessionStoreKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.warn("read session", err)
		}
		return nil
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.warn("decode session", err)
		return nil
	}

	if m.now().Unix()-s.CreatedAt > int64(sessionTTL.Seconds()) {
		m.Clear(ctx)
		return nil
	}
	return &s
}

// Clear removes the stored session.
func (m *SessionManager) Clear(ctx context.Context) {
	if err := m.kv.Delete(ctx, sessionStoreKey); err != nil {
		m.warn("clear session", err)
	}
}

// UserKey resolves the key that partitions local data: the logged-in user's
// key, or the guest partition when nobody is logged in.
func (m *SessionManager) UserKey(ctx context.Context) string {
	if s := m.Current(ctx); s != nil && s.UserKey != "" {
		return s.UserKey
	}
	return address.GuestKey
}

func (m *SessionManager) warn(op string, err error) {
	if m.logger == nil {
		return
	}
	m.logger.Warn("session store degraded", "op", op, "error", err)
}
