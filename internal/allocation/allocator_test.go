package allocation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/identifier"
	"github.com/still-asking/sapn-generator/internal/core/partition"
	"github.com/still-asking/sapn-generator/internal/core/storage"
	"github.com/still-asking/sapn-generator/internal/core/storage/memory"
	storagemocks "github.com/still-asking/sapn-generator/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	elc11 = partition.Key{Category: "ELC", Subcategory: "11"}
	elc12 = partition.Key{Category: "ELC", Subcategory: "12"}
	mec11 = partition.Key{Category: "MEC", Subcategory: "11"}
)

func newPart(t *testing.T, s *memory.Store, ipn string) int64 {
	t.Helper()
	p := &v1.Part{Name: "part", IPN: ipn}
	require.NoError(t, s.CreatePart(context.Background(), p))
	return p.ID
}

func TestAllocator_Scenarios(t *testing.T) {
	s := memory.New()
	a := NewAllocator(s, nil)
	ctx := context.Background()

	steps := []struct {
		key  partition.Key
		want identifier.Identifier
	}{
		{elc11, "SAPN-ELC-11-00001"},
		{elc11, "SAPN-ELC-11-00002"},
		{elc12, "SAPN-ELC-12-00001"},
		{mec11, "SAPN-MEC-11-00001"},
		{elc11, "SAPN-ELC-11-00003"},
	}

	for _, step := range steps {
		id, err := a.Allocate(ctx, newPart(t, s, ""), step.key, false)
		require.NoError(t, err)
		require.Equal(t, step.want, id)
	}
}

func TestAllocator_MonotonicSequence(t *testing.T) {
	s := memory.New()
	a := NewAllocator(s, nil)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		partID := newPart(t, s, "")
		id, err := a.Allocate(ctx, partID, elc11, false)
		require.NoError(t, err)

		want, err := identifier.Format(elc11, i)
		require.NoError(t, err)
		require.Equal(t, want, id)

		stored, err := s.GetPart(ctx, partID)
		require.NoError(t, err)
		require.Equal(t, want.String(), stored.IPN)
	}
}

func TestAllocator_IgnoresForeignIdentifiers(t *testing.T) {
	s := memory.New()
	a := NewAllocator(s, nil)

	for _, ipn := range []string{
		"SAPN-ELC-11-123",
		"SAPN-ELC-11-00A12",
		"SAPN-ELC-11-000010",
		"sapn-elc-11-00009",
		"SAPN-ELC-12-00077",
		"LEGACY-4711",
	} {
		newPart(t, s, ipn)
	}

	id, err := a.Allocate(context.Background(), newPart(t, s, ""), elc11, false)
	require.NoError(t, err)
	require.Equal(t, identifier.Identifier("SAPN-ELC-11-00001"), id)
}

func TestAllocator_Ceiling(t *testing.T) {
	s := memory.New()
	a := NewAllocator(s, nil)
	ctx := context.Background()

	newPart(t, s, "SAPN-ELC-11-99998")

	id, err := a.Allocate(ctx, newPart(t, s, ""), elc11, false)
	require.NoError(t, err)
	require.Equal(t, identifier.Identifier("SAPN-ELC-11-99999"), id)

	partID := newPart(t, s, "")
	_, err = a.Allocate(ctx, partID, elc11, false)
	require.ErrorIs(t, err, ErrSequenceOverflow)

	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
	require.Equal(t, elc11, overflow.Key)
	require.Equal(t, 100000, overflow.Next)

	stored, err := s.GetPart(ctx, partID)
	require.NoError(t, err)
	require.Empty(t, stored.IPN, "overflow must leave the part untouched")

	// Other partitions are unaffected.
	id, err = a.Allocate(ctx, partID, elc12, false)
	require.NoError(t, err)
	require.Equal(t, identifier.Identifier("SAPN-ELC-12-00001"), id)
}

func TestAllocator_AlreadyAssigned(t *testing.T) {
	s := memory.New()
	a := NewAllocator(s, nil)
	ctx := context.Background()

	partID := newPart(t, s, "SAPN-ELC-11-00004")

	_, err := a.Allocate(ctx, partID, elc11, false)
	require.ErrorIs(t, err, ErrAlreadyAssigned)

	id, err := a.Allocate(ctx, partID, elc11, true)
	require.NoError(t, err)
	require.Equal(t, identifier.Identifier("SAPN-ELC-11-00005"), id)
}

// racingStore commits a rival assignment of the same identifier right before
// the first attempt writes, so that attempt loses at commit.
type racingStore struct {
	*memory.Store
	rivalID int64
	once    sync.Once
}

func (r *racingStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.IdentifierTx) error) error {
	return r.Store.RunInTx(ctx, func(ctx context.Context, tx storage.IdentifierTx) error {
		return fn(ctx, &racingTx{IdentifierTx: tx, store: r})
	})
}

type racingTx struct {
	storage.IdentifierTx
	store *racingStore
}

func (t *racingTx) AssignIdentifier(ctx context.Context, partID int64, ipn string) error {
	var err error
	t.store.once.Do(func() {
		err = t.store.Store.RunInTx(ctx, func(ctx context.Context, rival storage.IdentifierTx) error {
			return rival.AssignIdentifier(ctx, t.store.rivalID, ipn)
		})
	})
	if err != nil {
		return err
	}
	return t.IdentifierTx.AssignIdentifier(ctx, partID, ipn)
}

func TestAllocator_RetriesAfterLostRace(t *testing.T) {
	mem := memory.New()
	rival := newPart(t, mem, "")
	target := newPart(t, mem, "")

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	a := NewAllocator(&racingStore{Store: mem, rivalID: rival}, metrics)
	ctx := context.Background()

	id, err := a.Allocate(ctx, target, elc11, false)
	require.NoError(t, err)
	require.Equal(t, identifier.Identifier("SAPN-ELC-11-00002"), id)

	rivalPart, err := mem.GetPart(ctx, rival)
	require.NoError(t, err)
	require.Equal(t, "SAPN-ELC-11-00001", rivalPart.IPN)

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.conflicts.WithLabelValues("ELC", "11")))
}

func TestAllocator_ConcurrentAllocationsAreUnique(t *testing.T) {
	const workers = 8

	s := memory.New()
	a := NewAllocator(s, nil)
	ctx := context.Background()

	partIDs := make([]int64, workers)
	for i := range partIDs {
		partIDs[i] = newPart(t, s, "")
	}

	var wg sync.WaitGroup
	results := make([]identifier.Identifier, workers)
	errs := make([]error, workers)
	for i := range partIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.Allocate(ctx, partIDs[i], elc11, false)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, workers)
	for i := range results {
		require.NoError(t, errs[i])
		seq, ok := identifier.ParseSequence(results[i].String(), elc11)
		require.True(t, ok)
		require.False(t, seen[seq], "duplicate sequence %d", seq)
		seen[seq] = true
	}
	for seq := 1; seq <= workers; seq++ {
		require.True(t, seen[seq], "sequence %d missing", seq)
	}
}

func TestAllocator_ConflictExhausted(t *testing.T) {
	store := storagemocks.NewIdentifierStore(t)
	store.EXPECT().
		RunInTx(mock.Anything, mock.Anything).
		Return(fmt.Errorf("commit: %w", storage.ErrConflict)).
		Times(MaxAttempts)

	_, err := NewAllocator(store, nil).Allocate(context.Background(), 1, elc11, false)
	require.ErrorIs(t, err, ErrConflictExhausted)

	var exhausted *ConflictExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, MaxAttempts, exhausted.Attempts)
	require.Equal(t, MaxAttempts, exhausted.Details()["attempts"])
}

func TestAllocator_OtherErrorsAreNotRetried(t *testing.T) {
	boom := errors.New("connection reset by peer")

	store := storagemocks.NewIdentifierStore(t)
	store.EXPECT().RunInTx(mock.Anything, mock.Anything).Return(boom).Once()

	_, err := NewAllocator(store, nil).Allocate(context.Background(), 1, elc11, false)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrConflictExhausted)
}

func TestAllocator_UsesTransactionReads(t *testing.T) {
	ctx := context.Background()

	tx := storagemocks.NewIdentifierTx(t)
	tx.EXPECT().CurrentIdentifier(mock.Anything, int64(7)).Return("", nil).Once()
	tx.EXPECT().
		IdentifiersWithPrefix(mock.Anything, "SAPN-ELC-11-").
		Return([]string{"SAPN-ELC-11-00041", "SAPN-ELC-11-0004X"}, nil).
		Once()
	tx.EXPECT().AssignIdentifier(mock.Anything, int64(7), "SAPN-ELC-11-00042").Return(nil).Once()

	store := storagemocks.NewIdentifierStore(t)
	store.EXPECT().
		RunInTx(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context, storage.IdentifierTx) error) error {
			return fn(ctx, tx)
		}).
		Once()

	id, err := NewAllocator(store, nil).Allocate(ctx, 7, elc11, false)
	require.NoError(t, err)
	require.Equal(t, identifier.Identifier("SAPN-ELC-11-00042"), id)
}

func TestAllocator_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := storagemocks.NewIdentifierStore(t)
	_, err := NewAllocator(store, nil).Allocate(ctx, 1, elc11, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAllocator_Inspect(t *testing.T) {
	s := memory.New()
	a := NewAllocator(s, nil)
	ctx := context.Background()

	status, err := a.Inspect(ctx, elc11)
	require.NoError(t, err)
	require.Equal(t, PartitionStatus{
		Category:    "ELC",
		Subcategory: "11",
		Next:        "SAPN-ELC-11-00001",
		Remaining:   identifier.MaxSequence,
	}, status)

	newPart(t, s, "SAPN-ELC-11-00003")
	newPart(t, s, "SAPN-ELC-11-00010")
	newPart(t, s, "SAPN-ELC-11-bogus")

	status, err = a.Inspect(ctx, elc11)
	require.NoError(t, err)
	require.Equal(t, 2, status.Assigned)
	require.Equal(t, 10, status.Highest)
	require.Equal(t, "SAPN-ELC-11-00011", status.Next)
	require.Equal(t, identifier.MaxSequence-10, status.Remaining)

	newPart(t, s, "SAPN-MEC-11-99999")
	status, err = a.Inspect(ctx, mec11)
	require.NoError(t, err)
	require.Empty(t, status.Next)
	require.Zero(t, status.Remaining)
}

func TestNewAllocator_PanicsWithoutStore(t *testing.T) {
	require.Panics(t, func() { NewAllocator(nil, nil) })
}
