// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// Backend stores note snapshots keyed by user and note id. Callers serialize
// access per user through [Partitions]; a backend only has to be safe for
// concurrent use across different users.
type Backend interface {
	// Load returns every snapshot held for userID. An empty map means Cold.
	Load(ctx context.Context, userID int64) (map[int64]models.Note, error)
	// Replace atomically swaps the whole partition content.
	Replace(ctx context.Context, userID int64, notes []models.Note) error
	Put(ctx context.Context, userID int64, note models.Note) error
	Remove(ctx context.Context, userID, noteID int64) error
	Clear(ctx context.Context, userID int64) error
}

// Partitions hands out exclusive per-user partition handles.
type Partitions struct {
	backend Backend
	locks   *keyedLock

	hits   prometheus.Counter
	misses prometheus.Counter
}

// New builds Partitions over backend. Metrics are registered on reg; a nil
// reg leaves them unregistered.
func New(backend Backend, reg prometheus.Registerer) *Partitions {
	factory := promauto.With(reg)
	return &Partitions{
		backend: backend,
		locks:   newKeyedLock(),
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "notes_cache_hits_total",
			Help: "Note list reads answered from a warm partition",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "notes_cache_misses_total",
			Help: "Note list reads that found a cold partition",
		}),
	}
}

// NewMemoryPartitions is New over an in-process backend.
func NewMemoryPartitions(reg prometheus.Registerer) *Partitions {
	return New(NewMemoryBackend(), reg)
}

// NewRedisPartitions is New over a Redis hash per user.
func NewRedisPartitions(client redis.UniversalClient, prefix string, reg prometheus.Registerer) *Partitions {
	return New(NewRedisBackend(client, prefix), reg)
}

// NewPartitionsFromConfig picks the backend named by cfg.Driver. The returned
// closer releases the backend connection, if any.
func NewPartitionsFromConfig(ctx context.Context, cfg config.Cache, reg prometheus.Registerer, log *logger.Logger) (*Partitions, func() error, error) {
	switch cfg.Driver {
	case "", config.CacheMemory:
		log.Info().Str("func", "cache.NewPartitionsFromConfig").Msg("using in-memory note cache")
		return NewMemoryPartitions(reg), func() error { return nil }, nil
	case config.CacheRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Err(err).Str("func", "cache.NewPartitionsFromConfig").Msg("error connecting to redis")
			return nil, nil, err
		}
		log.Info().Str("func", "cache.NewPartitionsFromConfig").Msg("using redis note cache")
		return NewRedisPartitions(client, cfg.KeyPrefix, reg), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Lock waits for exclusive access to userID's partition. It fails only when
// ctx is done first. The handle must be released with [Partition.Release].
func (p *Partitions) Lock(ctx context.Context, userID int64) (*Partition, error) {
	release, err := p.locks.lock(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Partition{
		userID:  userID,
		owner:   p,
		release: release,
	}, nil
}

// Partition is an exclusive handle on one user's cached note set.
type Partition struct {
	userID  int64
	owner   *Partitions
	release func()

	mu       sync.Mutex
	released bool
}

func (p *Partition) UserID() int64 {
	return p.userID
}

// Release gives the partition lock back. Calling it more than once is safe.
func (p *Partition) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return
	}
	p.released = true
	p.release()
}

func (p *Partition) held() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return ErrPartitionReleased
	}
	return nil
}

// Snapshot returns the cached notes ordered by note id and whether the
// partition was Warm. A Cold partition yields (nil, false, nil).
func (p *Partition) Snapshot(ctx context.Context) ([]models.Note, bool, error) {
	if err := p.held(); err != nil {
		return nil, false, err
	}

	entries, err := p.owner.backend.Load(ctx, p.userID)
	if err != nil {
		return nil, false, err
	}

	if len(entries) == 0 {
		p.owner.misses.Inc()
		return nil, false, nil
	}
	p.owner.hits.Inc()

	notes := make([]models.Note, 0, len(entries))
	for _, n := range entries {
		notes = append(notes, n)
	}
	SortNotes(notes)

	return notes, true, nil
}

// Warm reports whether the partition holds any snapshot. Unlike Snapshot it
// does not count towards the hit/miss metrics.
func (p *Partition) Warm(ctx context.Context) (bool, error) {
	if err := p.held(); err != nil {
		return false, err
	}

	entries, err := p.owner.backend.Load(ctx, p.userID)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Populate replaces the partition with notes. An empty set leaves it Cold.
func (p *Partition) Populate(ctx context.Context, notes []models.Note) error {
	if err := p.held(); err != nil {
		return err
	}
	return p.owner.backend.Replace(ctx, p.userID, notes)
}

// Put inserts or overwrites the snapshot of one note.
func (p *Partition) Put(ctx context.Context, note models.Note) error {
	if err := p.held(); err != nil {
		return err
	}
	return p.owner.backend.Put(ctx, p.userID, note)
}

// Remove drops one note snapshot. Removing an absent note is a no-op.
func (p *Partition) Remove(ctx context.Context, noteID int64) error {
	if err := p.held(); err != nil {
		return err
	}
	return p.owner.backend.Remove(ctx, p.userID, noteID)
}

// Invalidate empties the partition; the next read recomputes it.
func (p *Partition) Invalidate(ctx context.Context) error {
	if err := p.held(); err != nil {
		return err
	}
	return p.owner.backend.Clear(ctx, p.userID)
}

// SortNotes orders notes by ascending note id in place.
func SortNotes(notes []models.Note) {
	slices.SortFunc(notes, func(a, b models.Note) int {
		switch {
		case a.NoteID < b.NoteID:
			return -1
		case a.NoteID > b.NoteID:
			return 1
		default:
			return 0
		}
	})
}
