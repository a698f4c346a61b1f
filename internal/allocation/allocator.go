// Package allocation assigns SAPN identifiers to parts.
//
// The Allocator never holds a lock across attempts. Each attempt reads the
// partition's current maximum inside a store transaction and writes max+1;
// the store's uniqueness constraint rejects the loser of any race, and the
// loser retries against fresh state up to MaxAttempts times.
package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/still-asking/sapn-generator/internal/core/identifier"
	"github.com/still-asking/sapn-generator/internal/core/partition"
	"github.com/still-asking/sapn-generator/internal/core/storage"
)

// MaxAttempts bounds how many times one allocation races for a sequence.
const MaxAttempts = 10

var (
	ErrSequenceOverflow  = errors.New("partition sequence space exhausted")
	ErrConflictExhausted = errors.New("allocation conflict retries exhausted")
	ErrAlreadyAssigned   = errors.New("part already has an identifier")
)

// OverflowError reports that a partition has reached identifier.MaxSequence.
type OverflowError struct {
	Key  partition.Key
	Next int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: partition %s would need sequence %d (max %d)",
		ErrSequenceOverflow, e.Key, e.Next, identifier.MaxSequence)
}

func (e *OverflowError) Unwrap() error { return ErrSequenceOverflow }

func (e *OverflowError) Details() map[string]interface{} {
	return map[string]interface{}{
		"category":     e.Key.Category,
		"subcategory":  e.Key.Subcategory,
		"max_sequence": identifier.MaxSequence,
	}
}

// ConflictExhaustedError reports that every attempt lost a uniqueness race.
type ConflictExhaustedError struct {
	Key      partition.Key
	Attempts int
	Last     error
}

func (e *ConflictExhaustedError) Error() string {
	return fmt.Sprintf("%s: partition %s after %d attempts: %v",
		ErrConflictExhausted, e.Key, e.Attempts, e.Last)
}

func (e *ConflictExhaustedError) Unwrap() []error {
	return []error{ErrConflictExhausted, e.Last}
}

func (e *ConflictExhaustedError) Details() map[string]interface{} {
	return map[string]interface{}{
		"category":    e.Key.Category,
		"subcategory": e.Key.Subcategory,
		"attempts":    e.Attempts,
	}
}

// Allocator computes and persists the next identifier for a partition.
type Allocator struct {
	store   storage.IdentifierStore
	metrics *Metrics
}

// NewAllocator creates an Allocator. metrics may be nil.
func NewAllocator(store storage.IdentifierStore, metrics *Metrics) *Allocator {
	if store == nil {
		panic("allocation: identifier store is required")
	}
	return &Allocator{store: store, metrics: metrics}
}

// Allocate assigns the next identifier in key's partition to partID.
//
// Returns ErrAlreadyAssigned if the part holds an identifier and overwrite is
// false, *OverflowError when the partition is full, and
// *ConflictExhaustedError after MaxAttempts lost races. Other store errors
// are returned wrapped and are not retried.
func (a *Allocator) Allocate(ctx context.Context, partID int64, key partition.Key, overwrite bool) (identifier.Identifier, error) {
	var lastConflict error

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		id, err := a.attempt(ctx, partID, key, overwrite)
		if err == nil {
			a.metrics.observeAttempts(attempt)
			slog.Debug("[Allocator] Assigned identifier",
				"part_id", partID,
				"ipn", id,
				"attempt", attempt)
			return id, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return "", err
		}

		lastConflict = err
		a.metrics.observeConflict(key)
		slog.Debug("[Allocator] Lost sequence race, retrying",
			"part_id", partID,
			"category", key.Category,
			"subcategory", key.Subcategory,
			"attempt", attempt)
	}

	a.metrics.observeAttempts(MaxAttempts)
	return "", &ConflictExhaustedError{Key: key, Attempts: MaxAttempts, Last: lastConflict}
}

func (a *Allocator) attempt(ctx context.Context, partID int64, key partition.Key, overwrite bool) (identifier.Identifier, error) {
	var assigned identifier.Identifier

	err := a.store.RunInTx(ctx, func(ctx context.Context, tx storage.IdentifierTx) error {
		current, err := tx.CurrentIdentifier(ctx, partID)
		if err != nil {
			return fmt.Errorf("read identifier of part %d: %w", partID, err)
		}
		if current != "" && !overwrite {
			return fmt.Errorf("part %d holds %s: %w", partID, current, ErrAlreadyAssigned)
		}

		ids, err := tx.IdentifiersWithPrefix(ctx, identifier.Prefix(key))
		if err != nil {
			return fmt.Errorf("scan partition %s: %w", key, err)
		}

		next := identifier.NextSequence(ids, key)
		if next > identifier.MaxSequence {
			return &OverflowError{Key: key, Next: next}
		}

		id, err := identifier.Format(key, next)
		if err != nil {
			return err
		}
		if err := tx.AssignIdentifier(ctx, partID, id.String()); err != nil {
			return fmt.Errorf("persist identifier: %w", err)
		}
		assigned = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return assigned, nil
}

// PartitionStatus summarizes a partition's sequence space.
type PartitionStatus struct {
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`
	Assigned    int    `json:"assigned" yaml:"assigned"`
	Highest     int    `json:"highest" yaml:"highest"`
	Next        string `json:"next,omitempty" yaml:"next,omitempty"`
	Remaining   int    `json:"remaining" yaml:"remaining"`
}

// Inspect reports a partition's state using the same scan Allocate performs.
// Next is empty when the partition is full. Nothing is written.
func (a *Allocator) Inspect(ctx context.Context, key partition.Key) (PartitionStatus, error) {
	status := PartitionStatus{Category: key.Category, Subcategory: key.Subcategory}

	err := a.store.RunInTx(ctx, func(ctx context.Context, tx storage.IdentifierTx) error {
		ids, err := tx.IdentifiersWithPrefix(ctx, identifier.Prefix(key))
		if err != nil {
			return fmt.Errorf("scan partition %s: %w", key, err)
		}
		for _, id := range ids {
			if _, ok := identifier.ParseSequence(id, key); ok {
				status.Assigned++
			}
		}
		status.Highest = identifier.NextSequence(ids, key) - 1
		return nil
	})
	if err != nil {
		return PartitionStatus{}, err
	}

	status.Remaining = identifier.MaxSequence - status.Highest
	if status.Remaining < 0 {
		status.Remaining = 0
	}
	if next, err := identifier.Format(key, status.Highest+1); err == nil {
		status.Next = next.String()
	}
	return status, nil
}
