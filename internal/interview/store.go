package interview

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	shardCount     = 32
	maxCreateTries = 4
)

// Mutator edits a private copy of a record. The copy replaces the stored
// record only when commit is true, so a mutator can fail and still persist
// a side effect (the timeout transition does this).
type Mutator func(rec *Record) (commit bool, err error)

// Store owns every Record for the process lifetime. Records are sharded by
// id; each record has its own lock held across Update so submissions to one
// session serialize while other sessions proceed.
type Store struct {
	shards [shardCount]shard
	newID  func() string
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	// mu serializes writers; readers load rec without it.
	mu      sync.Mutex
	rec     atomic.Pointer[Record]
	deleted atomic.Bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator replaces the uuid-based id source.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{newID: func() string { return uuid.NewString() }}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]*entry)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.shards[h.Sum32()%shardCount]
}

// Create inserts rec under a fresh id, regenerating on collision.
func (s *Store) Create(_ context.Context, rec *Record) (string, error) {
	for range maxCreateTries {
		id := s.newID()
		sh := s.shardFor(id)

		sh.mu.Lock()
		if _, exists := sh.entries[id]; exists {
			sh.mu.Unlock()
			continue
		}
		stored := rec.Clone()
		stored.ID = id
		e := &entry{}
		e.rec.Store(stored)
		sh.entries[id] = e
		sh.mu.Unlock()
		return id, nil
	}
	return "", fmt.Errorf("create session after %d attempts: %w", maxCreateTries, ErrCollision)
}

func (s *Store) lookup(id string) (*entry, bool) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	e, ok := sh.entries[id]
	return e, ok
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(_ context.Context, id string) (*Record, error) {
	e, ok := s.lookup(id)
	if !ok || e.deleted.Load() {
		return nil, ErrNotFound
	}
	return e.rec.Load().Clone(), nil
}

// Update runs fn against a copy of the record while holding the record's
// lock and returns a copy of the resulting record. When fn declines to
// commit, the returned copy is the unchanged stored record.
func (s *Store) Update(_ context.Context, id string, fn Mutator) (*Record, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted.Load() {
		return nil, ErrNotFound
	}

	working := e.rec.Load().Clone()
	commit, err := fn(working)
	if commit {
		e.rec.Store(working)
		return working.Clone(), err
	}
	return e.rec.Load().Clone(), err
}

// Delete removes the record. It waits for an in-flight Update on the same
// id to finish.
func (s *Store) Delete(_ context.Context, id string) error {
	sh := s.shardFor(id)
	sh.mu.Lock()
	e, ok := sh.entries[id]
	if ok {
		delete(sh.entries, id)
	}
	sh.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	e.deleted.Store(true)
	e.mu.Unlock()
	return nil
}

// ListByOwner returns listings for every record owned by owner, oldest first.
func (s *Store) ListByOwner(_ context.Context, owner string) []Listing {
	var out []Listing
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for _, e := range sh.entries {
			rec := e.rec.Load()
			if rec.OwnerID == owner {
				out = append(out, rec.listing())
			}
		}
		sh.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SessionID < out[j].SessionID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Evict removes records created before cutoff and returns how many were
// removed. A record with an Update in flight is skipped and picked up by a
// later sweep, so an accepted answer is never dropped.
func (s *Store) Evict(cutoff time.Time) int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for id, e := range sh.entries {
			if !e.rec.Load().CreatedAt.Before(cutoff) || !e.mu.TryLock() {
				continue
			}
			e.deleted.Store(true)
			delete(sh.entries, id)
			e.mu.Unlock()
			n++
		}
		sh.mu.Unlock()
	}
	return n
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
