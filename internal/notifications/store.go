package notifications

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgredis "github.com/angelmondragon/velora-storefront/pkg/redis"
)

// Store holds at most one toast per session.
type Store interface {
	Put(ctx context.Context, sessionID string, toast Toast) error
	Get(ctx context.Context, sessionID string) (Toast, bool, error)
}

// MemoryStore keeps toasts in process memory and forgets them once removed.
type MemoryStore struct {
	mu     sync.Mutex
	toasts map[string]Toast
	now    func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{toasts: map[string]Toast{}, now: now}
}

func (m *MemoryStore) Put(_ context.Context, sessionID string, toast Toast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts[sessionID] = toast
	m.evictLocked()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (Toast, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	toast, ok := m.toasts[sessionID]
	if !ok {
		return Toast{}, false, nil
	}
	if toast.PhaseAt(m.now()) == PhaseRemoved {
		delete(m.toasts, sessionID)
		return Toast{}, false, nil
	}
	return toast, true, nil
}

func (m *MemoryStore) evictLocked() {
	now := m.now()
	for sessionID, toast := range m.toasts {
		if toast.PhaseAt(now) == PhaseRemoved {
			delete(m.toasts, sessionID)
		}
	}
}

type toastKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ToastKey(sessionID string) string
}

// RedisStore keeps each session's toast under one key that expires with the
// toast.
type RedisStore struct {
	client toastKV
}

func NewRedisStore(client toastKV) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Put(ctx context.Context, sessionID string, toast Toast) error {
	payload, err := json.Marshal(toast)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.client.ToastKey(sessionID), string(payload), Lifetime)
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (Toast, bool, error) {
	raw, err := r.client.Get(ctx, r.client.ToastKey(sessionID))
	if pkgredis.IsNotFound(err) {
		return Toast{}, false, nil
	}
	if err != nil {
		return Toast{}, false, err
	}
	var toast Toast
	if err := json.Unmarshal([]byte(raw), &toast); err != nil {
		return Toast{}, false, err
	}
	return toast, true, nil
}
