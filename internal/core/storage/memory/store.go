// Package memory provides an in-process implementation of storage.Store used
// for tests and ephemeral environments.
//
// Transactions are optimistic: reads see the latest committed state, writes
// are buffered, and commit rejects any write that would duplicate a committed
// IPN. Two concurrent attempts that read the same maximum therefore collide
// at commit exactly as they would against a unique index.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	parts  map[int64]*v1.Part
	owners map[string]int64 // ipn -> part id
	nextID int64
	nowFn  func() time.Time
}

func New() *Store {
	return &Store{
		parts:  make(map[int64]*v1.Part),
		owners: make(map[string]int64),
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) CreatePart(_ context.Context, part *v1.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if part.IPN != "" {
		if _, taken := s.owners[part.IPN]; taken {
			return fmt.Errorf("create part: %w", storage.ErrConflict)
		}
	}

	s.nextID++
	now := s.nowFn()
	part.ID = s.nextID
	part.CreatedAt = now
	part.UpdatedAt = now

	s.parts[part.ID] = clonePart(part)
	if part.IPN != "" {
		s.owners[part.IPN] = part.ID
	}
	return nil
}

func (s *Store) GetPart(_ context.Context, id int64) (*v1.Part, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parts[id]
	if !ok {
		return nil, storage.ErrPartNotFound
	}
	return clonePart(p), nil
}

func (s *Store) UpdatePart(_ context.Context, part *v1.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parts[part.ID]
	if !ok {
		return storage.ErrPartNotFound
	}
	p.Name = part.Name
	p.Description = part.Description
	p.Parameters = cloneParams(part.Parameters)
	p.UpdatedAt = s.nowFn()

	part.IPN = p.IPN
	part.CreatedAt = p.CreatedAt
	part.UpdatedAt = p.UpdatedAt
	return nil
}

func (s *Store) ListPartsWithoutIdentifier(_ context.Context, afterID int64, limit int) ([]*v1.Part, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.Part
	for id, p := range s.parts {
		if id > afterID && p.IPN == "" {
			out = append(out, clonePart(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.IdentifierTx) error) error {
	tx := &memTx{store: s, writes: make(map[int64]string)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return s.commit(tx.writes)
}

func (s *Store) commit(writes map[int64]string) error {
	if len(writes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for partID, ipn := range writes {
		if _, ok := s.parts[partID]; !ok {
			return storage.ErrPartNotFound
		}
		if owner, taken := s.owners[ipn]; taken && owner != partID {
			return fmt.Errorf("commit %s for part %d: %w", ipn, partID, storage.ErrConflict)
		}
	}

	now := s.nowFn()
	for partID, ipn := range writes {
		p := s.parts[partID]
		if p.IPN != "" {
			delete(s.owners, p.IPN)
		}
		p.IPN = ipn
		p.UpdatedAt = now
		s.owners[ipn] = partID
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

type memTx struct {
	store  *Store
	writes map[int64]string
}

func (t *memTx) CurrentIdentifier(_ context.Context, partID int64) (string, error) {
	if ipn, ok := t.writes[partID]; ok {
		return ipn, nil
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	p, ok := t.store.parts[partID]
	if !ok {
		return "", storage.ErrPartNotFound
	}
	return p.IPN, nil
}

func (t *memTx) IdentifiersWithPrefix(_ context.Context, prefix string) ([]string, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	var out []string
	for ipn := range t.store.owners {
		if strings.HasPrefix(ipn, prefix) {
			out = append(out, ipn)
		}
	}
	for _, ipn := range t.writes {
		if strings.HasPrefix(ipn, prefix) {
			out = append(out, ipn)
		}
	}
	return out, nil
}

func (t *memTx) AssignIdentifier(_ context.Context, partID int64, ipn string) error {
	t.writes[partID] = ipn
	return nil
}

func clonePart(p *v1.Part) *v1.Part {
	c := *p
	c.Parameters = cloneParams(p.Parameters)
	return &c
}

func cloneParams(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
