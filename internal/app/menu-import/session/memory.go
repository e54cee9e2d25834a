package menu_import_session

import (
	"context"
	"sync"
	"time"

	"github.com/init-pkg/menu-import/domain/app"
)

type memoryEntry struct {
	session   *app.ImportSession
	expiresAt time.Time
}

// MemoryStore is the session store used when no Redis is configured. Sessions
// live in this process only.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

var _ app.ImportSessionStore = &MemoryStore{}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (this *MemoryStore) Save(_ context.Context, s *app.ImportSession) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	this.evictExpired()
	this.sessions[s.ID] = memoryEntry{session: s, expiresAt: this.now().Add(this.ttl)}
	return nil
}

func (this *MemoryStore) Take(_ context.Context, id string) (*app.ImportSession, error) {
	this.mu.Lock()
	defer this.mu.Unlock()

	e, ok := this.sessions[id]
	delete(this.sessions, id)
	if !ok || !this.now().Before(e.expiresAt) {
		return nil, app.ErrSessionNotFound
	}
	return e.session, nil
}

func (this *MemoryStore) Drop(_ context.Context, id string) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	e, ok := this.sessions[id]
	delete(this.sessions, id)
	if !ok || !this.now().Before(e.expiresAt) {
		return app.ErrSessionNotFound
	}
	return nil
}

func (this *MemoryStore) evictExpired() {
	now := this.now()
	for id, e := range this.sessions {
		if !now.Before(e.expiresAt) {
			delete(this.sessions, id)
		}
	}
}
