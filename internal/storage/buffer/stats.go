package buffer

import (
	"github.com/bietkhonhungvandi212/pool-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pool-db/internal/utils"
)

// Statistics accessors. Each snapshot is a newly allocated slice of length
// frameCount describing frame i at index i; none of them mutate pool state.

// FrameContents reports the page number cached in each frame. A frame whose
// data buffer was never allocated reports NoPage.
func (bp *BufferPool) FrameContents() ([]page.Number, error) {
	if bp.frames == nil {
		return nil, util.ErrPoolNotInitialized
	}

	contents := make([]page.Number, len(bp.frames))
	for i := range bp.frames {
		if bp.frames[i].data == nil {
			contents[i] = page.NoPage
		} else {
			contents[i] = bp.frames[i].pageNum
		}
	}
	return contents, nil
}

// DirtyFlags reports which frames hold modified, not-yet-written pages.
func (bp *BufferPool) DirtyFlags() ([]bool, error) {
	if bp.frames == nil {
		return nil, util.ErrPoolNotInitialized
	}

	flags := make([]bool, len(bp.frames))
	for i := range bp.frames {
		flags[i] = bp.frames[i].dirty
	}
	return flags, nil
}

// FixCounts reports the pin count of each frame.
func (bp *BufferPool) FixCounts() ([]int, error) {
	if bp.frames == nil {
		return nil, util.ErrPoolNotInitialized
	}

	counts := make([]int, len(bp.frames))
	for i := range bp.frames {
		counts[i] = bp.frames[i].fixCount
	}
	return counts, nil
}

// PolicyAttributes reports each frame's replacement stamp, zero where the
// stamp was never set.
func (bp *BufferPool) PolicyAttributes() ([]int, error) {
	if bp.frames == nil {
		return nil, util.ErrPoolNotInitialized
	}

	attrs := make([]int, len(bp.frames))
	for i := range bp.frames {
		if bp.frames[i].hasStamp {
			attrs[i] = bp.frames[i].stamp
		}
	}
	return attrs, nil
}

// NumReadIO returns the number of page reads since initialization.
func (bp *BufferPool) NumReadIO() int {
	return bp.readIO
}

// NumWriteIO returns the number of page writes since initialization.
func (bp *BufferPool) NumWriteIO() int {
	return bp.writeIO
}
