package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bietkhonhungvandi212/pool-db/internal/storage/page"
)

func TestSnapshotsDescribeFramesConsistently(t *testing.T) {
	bp, _ := newTestPool(t, 4, 6, LRU)

	_, err := bp.Pin(3)
	require.NoError(t, err)
	require.NoError(t, bp.MarkDirty(3))
	pinUnpin(t, bp, 1)

	contents, err := bp.FrameContents()
	require.NoError(t, err)
	flags, err := bp.DirtyFlags()
	require.NoError(t, err)
	counts, err := bp.FixCounts()
	require.NoError(t, err)

	assert.Len(t, contents, 4, "contents length is frameCount")
	assert.Len(t, flags, 4, "flags length is frameCount")
	assert.Len(t, counts, 4, "counts length is frameCount")

	assert.Equal(t, []page.Number{3, 1, page.NoPage, page.NoPage}, contents)
	assert.Equal(t, []bool{true, false, false, false}, flags)
	assert.Equal(t, []int{1, 0, 0, 0}, counts)

	// Empty frames are always clean and unpinned.
	for i := range contents {
		if contents[i] == page.NoPage {
			assert.False(t, flags[i], "empty frame %d clean", i)
			assert.Equal(t, 0, counts[i], "empty frame %d unpinned", i)
		}
	}

	require.NoError(t, bp.Unpin(3))
}

func TestSnapshotsAreCopies(t *testing.T) {
	bp, _ := newTestPool(t, 2, 6, FIFO)
	pinUnpin(t, bp, 0)

	contents, err := bp.FrameContents()
	require.NoError(t, err)
	contents[0] = 999

	again, err := bp.FrameContents()
	require.NoError(t, err)
	assert.Equal(t, page.Number(0), again[0], "snapshot mutation does not reach the pool")
}

func TestFrameContentsAfterEviction(t *testing.T) {
	bp, _ := newTestPool(t, 1, 6, FIFO)

	pinUnpin(t, bp, 0)
	pinUnpin(t, bp, 1) // reuses the one frame's buffer

	contents, err := bp.FrameContents()
	require.NoError(t, err)
	assert.Equal(t, []page.Number{1}, contents, "frame reports its current resident page")
}

func TestPolicyAttributes(t *testing.T) {
	bp, _ := newTestPool(t, 3, 6, FIFO)

	attrs, err := bp.PolicyAttributes()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, attrs, "unset stamps report zero")

	pinUnpin(t, bp, 0)
	pinUnpin(t, bp, 1)

	attrs, err = bp.PolicyAttributes()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, attrs, "stamps record arrival order")
}
