// Package session wraps a gorilla/sessions cookie store with typed accessors
// for the cart, the signed-in user and the checkout form.
package session

import (
	"encoding/json"
	"net/http"

	"storefront/internal/user"

	"github.com/gorilla/sessions"
)

const (
	CookieName = "storefront_session"

	userKey  = "user"
	maxAge   = 7 * 24 * 60 * 60
	flashKey = "_flash"
)

type Manager struct {
	store sessions.Store
	name  string
}

// NewManager builds a cookie-backed manager. Values are signed and encrypted
// with keys derived from secret.
func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore(deriveKeys(secret)...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: CookieName}
}

// Load returns the request's session. A cookie that fails to decode yields
// a fresh session together with the decode error.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	s, err := m.store.Get(r, m.name)
	return &Session{s: s, r: r}, err
}

type Session struct {
	s *sessions.Session
	r *http.Request
}

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.s.Values[key].(string)
	return v, ok
}

func (s *Session) Set(key, value string) {
	s.s.Values[key] = value
}

func (s *Session) Delete(key string) {
	delete(s.s.Values, key)
}

func (s *Session) Save(w http.ResponseWriter) error {
	return s.s.Save(s.r, w)
}

// GetJSON decodes the value under key into dest. It reports false when the
// key is absent or the value does not decode.
func (s *Session) GetJSON(key string, dest any) bool {
	raw, ok := s.Get(key)
	if !ok || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *Session) SetJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Set(key, string(b))
	return nil
}

func (s *Session) User() *user.SessionUser {
	var u user.SessionUser
	if !s.GetJSON(userKey, &u) || u.ID == 0 {
		return nil
	}
	return &u
}

func (s *Session) SetUser(u *user.SessionUser) error {
	return s.SetJSON(userKey, u)
}

// Clear drops every value, used on logout.
func (s *Session) Clear() {
	for k := range s.s.Values {
		delete(s.s.Values, k)
	}
}

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	var msgs []string
	s.GetJSON(flashKey, &msgs)
	_ = s.SetJSON(flashKey, append(msgs, msg))
}

// Flashes returns the queued messages and removes them.
func (s *Session) Flashes() []string {
	var msgs []string
	s.GetJSON(flashKey, &msgs)
	s.Delete(flashKey)
	return msgs
}
