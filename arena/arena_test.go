package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

// TestArena_New tests construction and the empty-arena accounting.
func TestArena_New(t *testing.T) {
	a, err := New(1)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	assert.Equal(t, vmem.PageSize(), a.Capacity(), "capacity rounds up to whole pages")
	assert.Zero(t, a.Committed(), "nothing is committed at construction")
	assert.Zero(t, a.Used())
	assert.Equal(t, a.Capacity(), a.Remaining())
}

// TestArena_New_PanicsOnBadCapacity tests the capacity contract.
func TestArena_New_PanicsOnBadCapacity(t *testing.T) {
	require.Panics(t, func() { _, _ = New(0) })
	require.Panics(t, func() { _, _ = New(-4096) })
}

// TestArena_Allocate_Simple tests one allocation on a one-page arena.
func TestArena_Allocate_Simple(t *testing.T) {
	cm := vmem.NewCounting(nil)
	a, err := NewWithOptions(vmem.PageSize(), Options{Mapper: cm})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	s, err := a.Allocate(100, 8)
	require.NoError(t, err)
	require.Equal(t, mem.Size(100), s.Len())
	assert.True(t, s.IsAlignedTo(8))
	assert.True(t, a.Owns(s))

	// The first allocation commits exactly one granularity step: one page.
	assert.Equal(t, vmem.PageSize(), a.Committed())
	assert.Equal(t, int64(1), cm.Stats().Commits)
	assert.Equal(t, vmem.PageSize(), cm.Stats().CommittedBytes)

	// The span is writable memory.
	s[0] = 0x42
	s[99] = 0x24
	assert.Equal(t, byte(0x42), s[0])
}

// TestArena_Allocate_CapacityExceeded tests the hard capacity limit.
func TestArena_Allocate_CapacityExceeded(t *testing.T) {
	cm := vmem.NewCounting(nil)
	a, err := NewWithOptions(vmem.PageSize(), Options{Mapper: cm})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	s, err := a.Allocate(vmem.PageSize()+1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.True(t, s.IsEmpty(), "failed allocation returns the empty span")

	// Failure is atomic: nothing committed, nothing consumed.
	assert.Zero(t, a.Committed())
	assert.Zero(t, a.Used())
	assert.Zero(t, cm.Stats().Commits)

	// The arena is still usable for requests that fit.
	fit, err := a.Allocate(100, 1)
	require.NoError(t, err)
	assert.Equal(t, mem.Size(100), fit.Len())
}

// TestArena_Allocate_NonOverlap tests pairwise disjointness and alignment
// across a mixed allocation sequence.
func TestArena_Allocate_NonOverlap(t *testing.T) {
	a, err := New(64 * mem.KiB)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	sizes := []mem.Size{1, 7, 8, 100, 1024, 3, 4096, 65}
	aligns := []mem.Alignment{1, 2, 8, 64, 16, 4096, 8, 32}

	spans := make([]mem.Span, 0, len(sizes))
	for i, size := range sizes {
		s, err := a.Allocate(size, aligns[i])
		require.NoError(t, err, "allocation %d should succeed", i)
		require.Equal(t, size, s.Len())
		assert.True(t, s.IsAlignedTo(aligns[i]), "allocation %d should be %d-aligned", i, aligns[i])
		assert.True(t, a.Owns(s))
		spans = append(spans, s)
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			assert.False(t, spans[i].Overlaps(spans[j]), "spans %d and %d should not overlap", i, j)
		}
	}
}

// TestArena_Allocate_ZeroSize tests that zero-size requests anchor without
// consuming or committing anything.
func TestArena_Allocate_ZeroSize(t *testing.T) {
	cm := vmem.NewCounting(nil)
	a, err := NewWithOptions(vmem.PageSize(), Options{Mapper: cm})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	z, err := a.Allocate(0, 64)
	require.NoError(t, err)
	assert.True(t, z.IsEmpty())
	assert.Zero(t, a.Used(), "zero-size allocation must not advance the cursor")
	assert.Zero(t, cm.Stats().Commits, "zero-size allocation must not commit")

	// The anchor is where the next real allocation lands.
	s, err := a.Allocate(1, 64)
	require.NoError(t, err)
	assert.Equal(t, z.Addr(), s.Addr())
}

// TestArena_Allocate_CoarseAlignment tests alignments coarser than a page.
func TestArena_Allocate_CoarseAlignment(t *testing.T) {
	a, err := New(8 * vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	twoPages := mem.Alignment(2 * vmem.PageSize())
	s1, err := a.Allocate(10, twoPages)
	require.NoError(t, err)
	assert.True(t, s1.IsAlignedTo(twoPages))

	s2, err := a.Allocate(10, twoPages)
	require.NoError(t, err)
	assert.True(t, s2.IsAlignedTo(twoPages))
	assert.False(t, s1.Overlaps(s2))
}

// TestArena_Allocate_ContractPanics tests the programmer-error paths.
func TestArena_Allocate_ContractPanics(t *testing.T) {
	a, err := New(vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	require.Panics(t, func() { _, _ = a.Allocate(-1, 8) }, "negative size")
	require.Panics(t, func() { _, _ = a.Allocate(8, 3) }, "non-power-of-two alignment")
	require.Panics(t, func() { _, _ = a.Allocate(8, 0) }, "zero alignment")
}

// TestArena_CapacityBound tests that consumption never exceeds the rounded
// capacity and that the first over-limit call fails cleanly.
func TestArena_CapacityBound(t *testing.T) {
	a, err := New(4 * vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	for {
		s, err := a.Allocate(257, 8)
		if err != nil {
			assert.ErrorIs(t, err, ErrCapacity)
			assert.True(t, s.IsEmpty())
			break
		}
		require.LessOrEqual(t, a.Used(), a.Capacity())
	}

	// Fill the tail to the brim: single bytes must fit until Remaining
	// hits zero exactly.
	for a.Remaining() > 0 {
		_, err := a.Allocate(1, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, a.Capacity(), a.Used())

	_, err = a.Allocate(1, 1)
	assert.ErrorIs(t, err, ErrCapacity)
}

// TestArena_CommitMonotonic tests that the watermark only ever grows.
func TestArena_CommitMonotonic(t *testing.T) {
	a, err := New(16 * vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	var prev mem.Size
	sizes := []mem.Size{10, 5000, 1, 300, 9000, 42, 12000}
	for _, size := range sizes {
		_, err := a.Allocate(size, 8)
		require.NoError(t, err)

		c := a.Committed()
		assert.GreaterOrEqual(t, c, prev, "watermark must not shrink")
		assert.GreaterOrEqual(t, c, a.Used(), "watermark covers every allocation")
		assert.True(t, mem.IsAligned(c, vmem.PageAlignment()) || c == a.Capacity())
		prev = c
	}
}

// TestArena_CommitFailureAtomic tests that a refused commit leaves the
// arena exactly as it was.
func TestArena_CommitFailureAtomic(t *testing.T) {
	fm := &flakyMapper{Mapper: vmem.System()}
	a, err := NewWithOptions(4*vmem.PageSize(), Options{Mapper: fm})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	first, err := a.Allocate(100, 1)
	require.NoError(t, err)

	fm.failCommits = true

	// Inside the committed watermark no commit is needed, so this still
	// succeeds even while the mapper is refusing.
	small, err := a.Allocate(50, 1)
	require.NoError(t, err)
	assert.Equal(t, first.End(), small.Addr())

	before := a.Stats()
	s, err := a.Allocate(2*vmem.PageSize(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, before, a.Stats(), "failed commit must not change state")

	// Once the mapper recovers, the identical request proceeds from the
	// same cursor.
	fm.failCommits = false
	retry, err := a.Allocate(2*vmem.PageSize(), 1)
	require.NoError(t, err)
	assert.Equal(t, small.End(), retry.Addr())
}

// TestArena_Reset_AddressStability tests that an identical sequence after
// Reset lands at identical addresses.
func TestArena_Reset_AddressStability(t *testing.T) {
	a, err := New(64 * mem.KiB)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	sizes := []mem.Size{100, 3000, 64, 1, 512}
	aligns := []mem.Alignment{8, 64, 1, 16, 4096}

	run := func() []uintptr {
		addrs := make([]uintptr, len(sizes))
		for i, size := range sizes {
			s, err := a.Allocate(size, aligns[i])
			require.NoError(t, err)
			addrs[i] = s.Addr()
		}
		return addrs
	}

	firstRound := run()
	a.Reset()
	assert.Zero(t, a.Used())
	secondRound := run()

	assert.Equal(t, firstRound, secondRound, "same sequence should yield the same addresses")
}

// TestArena_Reset_RetainsCommitted tests that Reset keeps pages committed
// so the next burst needs no syscalls.
func TestArena_Reset_RetainsCommitted(t *testing.T) {
	cm := vmem.NewCounting(nil)
	a, err := NewWithOptions(4*vmem.PageSize(), Options{Mapper: cm})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	s1, err := a.Allocate(3000, 1)
	require.NoError(t, err)

	committed := a.Committed()
	commits := cm.Stats().Commits
	require.Greater(t, commits, int64(0))

	a.Reset()
	assert.Equal(t, committed, a.Committed(), "Reset must not decommit")

	s2, err := a.Allocate(3000, 1)
	require.NoError(t, err)
	assert.Equal(t, s1.Addr(), s2.Addr())
	assert.Equal(t, commits, cm.Stats().Commits, "re-burst must not re-commit")
	assert.Zero(t, cm.Stats().Decommits, "arena never decommits outside Release")
}

// TestArena_Release_Idempotent tests double release and post-release reads.
func TestArena_Release_Idempotent(t *testing.T) {
	a, err := New(vmem.PageSize())
	require.NoError(t, err)

	s, err := a.Allocate(128, 8)
	require.NoError(t, err)

	require.NoError(t, a.Release())
	require.NoError(t, a.Release(), "second Release is a no-op")

	assert.Zero(t, a.Capacity())
	assert.Zero(t, a.Committed())
	assert.False(t, a.Owns(s))
}

// TestArena_Release_ThenAllocatePanics tests the use-after-release contract.
func TestArena_Release_ThenAllocatePanics(t *testing.T) {
	a, err := New(vmem.PageSize())
	require.NoError(t, err)
	require.NoError(t, a.Release())

	require.Panics(t, func() { _, _ = a.Allocate(8, 8) })
	require.Panics(t, func() { a.Reset() })
}

// TestArena_ZeroValuePanics tests that a zero-value Arena refuses to work.
func TestArena_ZeroValuePanics(t *testing.T) {
	var a Arena
	require.Panics(t, func() { _, _ = a.Allocate(8, 8) })
	require.Panics(t, func() { a.Reset() })
}

// TestArena_Granularity tests commit batching in multi-page steps.
func TestArena_Granularity(t *testing.T) {
	gran := 4 * vmem.PageSize()
	cm := vmem.NewCounting(nil)
	a, err := NewWithOptions(8*vmem.PageSize(), Options{Granularity: gran, Mapper: cm})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	// First byte commits a whole granularity step.
	_, err = a.Allocate(vmem.PageSize(), 1)
	require.NoError(t, err)
	assert.Equal(t, gran, a.Committed())
	assert.Equal(t, int64(1), cm.Stats().Commits)

	// Everything inside the step is syscall-free.
	for range 3 {
		_, err = a.Allocate(vmem.PageSize(), 1)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), cm.Stats().Commits)

	// Crossing the step boundary commits the next step.
	_, err = a.Allocate(vmem.PageSize(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cm.Stats().Commits)
	assert.Equal(t, 2*gran, a.Committed())
}

// TestArena_Granularity_InvalidPanics tests granularity validation.
func TestArena_Granularity_InvalidPanics(t *testing.T) {
	require.Panics(t, func() {
		_, _ = NewWithOptions(vmem.PageSize(), Options{Granularity: 3 * vmem.PageSize()})
	}, "non-power-of-two granularity")
	require.Panics(t, func() {
		_, _ = NewWithOptions(vmem.PageSize(), Options{Granularity: 512})
	}, "granularity below the page size")
}

// TestArena_Owns tests reservation membership checks.
func TestArena_Owns(t *testing.T) {
	a, err := New(vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	b, err := New(vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Release()) }()

	sa, err := a.Allocate(64, 8)
	require.NoError(t, err)
	sb, err := b.Allocate(64, 8)
	require.NoError(t, err)

	assert.True(t, a.Owns(sa))
	assert.False(t, a.Owns(sb), "spans of another arena are foreign")
	assert.False(t, a.Owns(mem.SpanOf(make([]byte, 64))), "heap memory is foreign")
	assert.False(t, a.Owns(nil), "the empty span belongs to nothing")
}

// TestArena_Stats tests the counter snapshot.
func TestArena_Stats(t *testing.T) {
	a, err := New(4 * vmem.PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Release()) }()

	for range 3 {
		_, err := a.Allocate(100, 8)
		require.NoError(t, err)
	}
	a.Reset()
	_, err = a.Allocate(100, 8)
	require.NoError(t, err)

	st := a.Stats()
	assert.Equal(t, int64(4), st.Allocs)
	assert.Equal(t, int64(1), st.Resets)
	assert.Equal(t, a.Capacity(), st.Reserved)
	assert.Equal(t, a.Committed(), st.Committed)
	assert.Equal(t, mem.Size(100), st.Used)
	assert.GreaterOrEqual(t, st.Commits, int64(1))
}

// flakyMapper delegates to a real mapper but refuses Commit on demand, for
// exercising the failure-atomicity path.
type flakyMapper struct {
	vmem.Mapper
	failCommits bool
}

func (f *flakyMapper) Commit(s mem.Span) error {
	if f.failCommits {
		return assert.AnError
	}
	return f.Mapper.Commit(s)
}
