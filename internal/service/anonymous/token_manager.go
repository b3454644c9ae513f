package anonymous

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type grant struct {
	anonymousID string
	expiresAt   time.Time
}

// tokenManager keeps anonymous grants in memory. They do not survive a restart.
type tokenManager struct {
	mu     sync.RWMutex
	grants map[string]grant
	now    func() time.Time
}

func newTokenManager() *tokenManager {
	return &tokenManager{grants: make(map[string]grant), now: time.Now}
}

func (m *tokenManager) issue(anonymousID string, ttl time.Duration) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.grants[token] = grant{anonymousID: anonymousID, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return token, nil
}

// lookup returns the anonymous id for token. Expired grants are dropped on sight.
func (m *tokenManager) lookup(token string) (string, bool) {
	m.mu.RLock()
	g, ok := m.grants[token]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if m.now().After(g.expiresAt) {
		m.revoke(token)
		return "", false
	}
	return g.anonymousID, true
}

func (m *tokenManager) revoke(token string) {
	m.mu.Lock()
	delete(m.grants, token)
	m.mu.Unlock()
}

func (m *tokenManager) sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for token, g := range m.grants {
		if now.After(g.expiresAt) {
			delete(m.grants, token)
			n++
		}
	}
	return n
}

func (m *tokenManager) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.grants)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
