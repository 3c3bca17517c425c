package token

import (
	"sync"
	"time"
)

// RevokedTokenCache records revoked token IDs until the tokens expire.
type RevokedTokenCache interface {
	Add(jti string, exp time.Time) error
	IsRevoked(jti string) bool
	// Cleanup drops entries whose token has expired and returns how many went.
	Cleanup() int
	Len() int
}

// InMemoryRevokedTokenCache keeps the denylist in process memory. Entries do
// not survive a restart.
type InMemoryRevokedTokenCache struct {
	mu      sync.RWMutex
	expiry  map[string]time.Time
	nowFunc func() time.Time
}

func NewInMemoryRevokedTokenCache(nowFunc func() time.Time) *InMemoryRevokedTokenCache {
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &InMemoryRevokedTokenCache{
		expiry:  make(map[string]time.Time),
		nowFunc: nowFunc,
	}
}

// Add is a no-op for a token that has already expired.
func (c *InMemoryRevokedTokenCache) Add(jti string, exp time.Time) error {
	if !exp.After(c.nowFunc()) {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.expiry[jti]; !ok || exp.After(prev) {
		c.expiry[jti] = exp
	}
	return nil
}

func (c *InMemoryRevokedTokenCache) IsRevoked(jti string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.expiry[jti]
	return ok
}

func (c *InMemoryRevokedTokenCache) Cleanup() int {
	now := c.nowFunc()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for jti, exp := range c.expiry {
		if now.After(exp) {
			delete(c.expiry, jti)
			removed++
		}
	}
	return removed
}

func (c *InMemoryRevokedTokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.expiry)
}
