package memory

import (
	"context"
	"sync"
	"time"

	"pet-care-reminders/internal/domain/reminders"
)

// DefaultDedupTTL: las marcas sobreviven holgadamente cualquier
// superposición de sweeps y después se descartan para que el mapa no
// crezca sin límite.
const DefaultDedupTTL = 60 * 24 * time.Hour

// dedupRepo es el ledger de dedup en memoria: un mapa con TTL,
// inyectado explícitamente en el Sweeper (nada de singletons a nivel
// de módulo). El reloj también se inyecta para poder testear la
// expiración.
type dedupRepo struct {
	mu        sync.Mutex
	expiresAt map[string]time.Time
	ttl       time.Duration
	now       func() time.Time
}

func NewDedupRepo(ttl time.Duration) reminders.Ledger {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &dedupRepo{
		expiresAt: make(map[string]time.Time),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (r *dedupRepo) Seen(ctx context.Context, key reminders.DedupKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.expiresAt[key.String()]
	if !ok {
		return false, nil
	}
	if r.now().After(exp) {
		// expirada: eviction perezosa
		delete(r.expiresAt, key.String())
		return false, nil
	}
	return true, nil
}

func (r *dedupRepo) Mark(ctx context.Context, key reminders.DedupKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.expiresAt[key.String()] = r.now().Add(r.ttl)
	return nil
}
