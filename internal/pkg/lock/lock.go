// Package lock provides short-lived named locks used to keep two payroll
// commits for the same company and period from running at once.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotAcquired is returned when the key is already held, or when a lease
// being extended was lost to another owner.
var ErrNotAcquired = errors.New("lock is held by another owner")

// Lease is a held lock.
type Lease interface {
	// Extend pushes the expiry to ttl from now.
	Extend(ctx context.Context, ttl time.Duration) error
	// Release is safe to call more than once.
	Release()
}

// Locker acquires a lock on key for at most ttl.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// KeepAlive extends lease every ttl/3 until stop is called or an extension
// fails. onLost, if set, receives that failure. stop waits for the renewer to exit.
func KeepAlive(ctx context.Context, lease Lease, ttl time.Duration, onLost func(error)) (stop func()) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	go func() {
		defer close(done)
		interval := ttl / 3
		if interval <= 0 {
			interval = time.Millisecond
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := lease.Extend(ctx, ttl); err != nil {
					if ctx.Err() == nil && onLost != nil {
						onLost(err)
					}
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

// Memory is an in-process Locker for single-instance deployments and tests.
type Memory struct {
	mu    sync.Mutex
	held  map[string]memoryEntry
	now   func() time.Time
	token uint64
}

type memoryEntry struct {
	token     uint64
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{held: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Acquire(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if entry, ok := m.held[key]; ok && now.Before(entry.expiresAt) {
		return nil, ErrNotAcquired
	}

	m.token++
	m.held[key] = memoryEntry{token: m.token, expiresAt: now.Add(ttl)}
	return &memoryLease{m: m, key: key, token: m.token}, nil
}

type memoryLease struct {
	m     *Memory
	key   string
	token uint64
	once  sync.Once
}

func (l *memoryLease) Extend(_ context.Context, ttl time.Duration) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	entry, ok := l.m.held[l.key]
	if !ok || entry.token != l.token {
		return ErrNotAcquired
	}
	entry.expiresAt = l.m.now().Add(ttl)
	l.m.held[l.key] = entry
	return nil
}

func (l *memoryLease) Release() {
	l.once.Do(func() {
		l.m.mu.Lock()
		defer l.m.mu.Unlock()
		// An expired lock may have been taken over; only drop our own.
		if entry, ok := l.m.held[l.key]; ok && entry.token == l.token {
			delete(l.m.held, l.key)
		}
	})
}
