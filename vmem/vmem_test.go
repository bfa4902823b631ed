package vmem

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/mem"
)

// TestPageSize tests the cached page-size constants.
func TestPageSize(t *testing.T) {
	ps := PageSize()
	assert.Greater(t, ps, mem.Size(0))
	assert.True(t, PageAlignment().IsValid(), "page size should be a power of two")
	assert.Equal(t, mem.Alignment(ps), PageAlignment())
}

// TestReserve_RoundsToPageSize tests that reservations are whole pages.
func TestReserve_RoundsToPageSize(t *testing.T) {
	s, err := Reserve(1)
	require.NoError(t, err)
	defer func() { require.NoError(t, Release(s)) }()

	assert.Equal(t, PageSize(), s.Len(), "1 byte should round up to one page")
	assert.True(t, s.IsAlignedTo(PageAlignment()), "reservation should start on a page boundary")

	big, err := Reserve(PageSize() + 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, Release(big)) }()

	assert.Equal(t, 2*PageSize(), big.Len())
}

// TestReserve_PanicsOnNonPositive tests the size contract.
func TestReserve_PanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { _, _ = Reserve(0) })
	require.Panics(t, func() { _, _ = Reserve(-1) })
}

// TestReserve_TooLarge tests the overflow guard.
func TestReserve_TooLarge(t *testing.T) {
	_, err := Reserve(mem.Size(math.MaxInt64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}

// TestCommitWriteRelease tests the straight-line reserve/commit/write path.
func TestCommitWriteRelease(t *testing.T) {
	s, err := Reserve(4 * PageSize())
	require.NoError(t, err)

	committed, ok := s.Slice(0, 2*PageSize())
	require.True(t, ok)
	require.NoError(t, Commit(committed))

	// Committed pages must be writable and read back what we wrote.
	committed[0] = 0xAB
	committed[len(committed)-1] = 0xCD
	assert.Equal(t, byte(0xAB), committed[0])
	assert.Equal(t, byte(0xCD), committed[len(committed)-1])

	require.NoError(t, Release(s))
}

// TestCommit_ZeroFilled tests that committed pages read as zero.
func TestCommit_ZeroFilled(t *testing.T) {
	s, err := Reserve(PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, Release(s)) }()

	require.NoError(t, Commit(s))
	for _, b := range s {
		require.Zero(t, b)
	}
}

// TestDecommitRecommit tests that a decommitted range can be committed again.
func TestDecommitRecommit(t *testing.T) {
	s, err := Reserve(2 * PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, Release(s)) }()

	require.NoError(t, Commit(s))
	s[0] = 0xFF

	require.NoError(t, Decommit(s))
	require.NoError(t, Commit(s))

	if runtime.GOOS == "linux" {
		// MADV_DONTNEED drops pages immediately, so the recommitted
		// range reads as zero. MADV_FREE platforms only promise the
		// contents are disposable, not gone.
		assert.Zero(t, s[0], "recommitted page should read as zero")
	}
	s[0] = 0x01 // still writable either way
}

// TestCommit_MisalignedPanics tests the page-alignment contract.
func TestCommit_MisalignedPanics(t *testing.T) {
	s, err := Reserve(4 * PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, Release(s)) }()

	offByOne, ok := s.Slice(1, PageSize())
	require.True(t, ok)
	require.Panics(t, func() { _ = Commit(offByOne) }, "misaligned address should panic")

	shortLen, ok := s.Slice(0, 100)
	require.True(t, ok)
	require.Panics(t, func() { _ = Commit(shortLen) }, "misaligned length should panic")
	require.Panics(t, func() { _ = Decommit(shortLen) })
}

// TestCommit_EmptySpanIsNoop tests that empty spans are accepted everywhere.
func TestCommit_EmptySpanIsNoop(t *testing.T) {
	var empty mem.Span
	assert.NoError(t, Commit(empty))
	assert.NoError(t, Decommit(empty))
	assert.NoError(t, Release(empty))
	assert.NoError(t, Populate(empty))
}

// TestPopulate tests pre-faulting a committed range.
func TestPopulate(t *testing.T) {
	s, err := Reserve(4 * PageSize())
	require.NoError(t, err)
	defer func() { require.NoError(t, Release(s)) }()

	require.NoError(t, Commit(s))
	require.NoError(t, Populate(s))

	// Populate must not disturb contents.
	s[0] = 0x7E
	require.NoError(t, Populate(s))
	assert.Equal(t, byte(0x7E), s[0])

	sub, ok := s.Slice(1, PageSize())
	require.True(t, ok)
	require.Panics(t, func() { _ = Populate(sub) }, "misaligned populate should panic")
}
