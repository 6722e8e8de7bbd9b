package buffer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/pool-db/internal/metrics"
	"github.com/bietkhonhungvandi212/pool-db/internal/storage/page"
	"github.com/bietkhonhungvandi212/pool-db/internal/storage/pagefile"
	util "github.com/bietkhonhungvandi212/pool-db/internal/utils"
)

// frame is one slot of the pool. Its data buffer is allocated lazily on the
// first load into the slot and reused across evictions, never reallocated.
type frame struct {
	pageNum  page.Number
	data     []byte
	dirty    bool
	fixCount int
	stamp    int  // logical timestamp used by the replacement policy
	hasStamp bool // false until the frame is first populated
}

// Config carries the pool configuration fixed at initialization.
type Config struct {
	FrameCount int
	Strategy   Strategy
	// StrategyConfig is an opaque per-strategy blob, unused by FIFO/LRU and
	// reserved for future policies such as an LRU-K window size.
	StrategyConfig any
	// Logger defaults to a no-op logger when nil.
	Logger *zap.Logger
	// Metrics counters are optional; nil disables them.
	Metrics *metrics.PoolMetrics
}

// BufferPool caches fixed-size pages of one page file in a fixed number of
// in-memory frames. At most one live pool per page file; single caller at a
// time, no internal locking.
type BufferPool struct {
	pageFile       string
	fm             *pagefile.Manager
	frames         []frame // nil after shutdown
	strategy       Strategy
	strategyConfig any
	clock          int
	readIO         int
	writeIO        int
	logger         *zap.Logger
	metrics        *metrics.PoolMetrics
}

// PageHandle is a borrowed view into pool-owned frame storage. Data stays
// valid only while the page is pinned; holding it past Unpin is undefined
// once the frame is evicted and repurposed.
type PageHandle struct {
	Num  page.Number
	Data []byte
}

// NewBufferPool opens the named page file and allocates frameCount empty
// frames. The file must already exist; page data buffers are allocated
// lazily on first use.
func NewBufferPool(path string, cfg Config) (*BufferPool, error) {
	if cfg.FrameCount <= 0 {
		return nil, util.ErrInvalidFrameCount
	}
	if cfg.Strategy != FIFO && cfg.Strategy != LRU {
		return nil, util.ErrUnknownStrategy
	}

	fm, err := pagefile.Open(path)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferPool{
		pageFile:       path,
		fm:             fm,
		frames:         make([]frame, cfg.FrameCount),
		strategy:       cfg.Strategy,
		strategyConfig: cfg.StrategyConfig,
		logger:         logger,
		metrics:        cfg.Metrics,
	}
	for i := range bp.frames {
		bp.frames[i].pageNum = page.NoPage
	}

	logger.Info("buffer pool initialized",
		zap.String("pageFile", path),
		zap.Int("frameCount", cfg.FrameCount),
		zap.Stringer("strategy", cfg.Strategy))

	return bp, nil
}

// Shutdown flushes all dirty unpinned frames, releases the frame array and
// closes the page file. It fails without touching anything if a client still
// holds a pin, so the pool stays fully usable after a failed attempt.
func (bp *BufferPool) Shutdown() error {
	if bp.frames == nil {
		return util.ErrPoolNotInitialized
	}

	for i := range bp.frames {
		if bp.frames[i].fixCount != 0 {
			return fmt.Errorf("%w: page %d has fix count %d",
				util.ErrShutdownFailed, bp.frames[i].pageNum, bp.frames[i].fixCount)
		}
	}

	if err := bp.FlushAll(); err != nil {
		return err
	}

	bp.frames = nil
	bp.logger.Info("buffer pool shut down", zap.String("pageFile", bp.pageFile))
	return bp.fm.Close()
}

// FlushAll writes every frame that is both dirty and unpinned back to disk
// and clears its dirty flag. Pinned frames are skipped even when dirty.
func (bp *BufferPool) FlushAll() error {
	if bp.frames == nil {
		return util.ErrPoolNotInitialized
	}

	for i := range bp.frames {
		f := &bp.frames[i]
		if !f.dirty || f.fixCount != 0 {
			continue
		}
		if err := bp.writeFrame(f); err != nil {
			return err
		}
		if bp.metrics != nil {
			bp.metrics.Flushes.Inc()
		}
		bp.logger.Debug("flushed page", zap.Int64("page", int64(f.pageNum)))
	}

	if err := bp.fm.Sync(); err != nil {
		return fmt.Errorf("sync page file: %w", err)
	}
	return nil
}

// Pin makes pageNum resident and increments its fix count, loading it from
// disk into a free or reclaimed frame on a miss. The returned handle is
// valid until the matching Unpin.
func (bp *BufferPool) Pin(pageNum page.Number) (PageHandle, error) {
	if pageNum < 0 {
		return PageHandle{}, util.ErrNegativePageNumber
	}
	if bp.frames == nil {
		return PageHandle{}, util.ErrPoolNotInitialized
	}

	// Cache hit: only a recency-based policy refreshes the stamp.
	if idx := bp.findResident(pageNum); idx != -1 {
		f := &bp.frames[idx]
		f.fixCount++
		if bp.strategy == LRU {
			bp.touch(f)
		}
		if bp.metrics != nil {
			bp.metrics.Hits.Inc()
		}
		return PageHandle{Num: pageNum, Data: f.data}, nil
	}

	idx := bp.findEmpty()
	if idx == -1 {
		idx = bp.selectVictim()
		if idx == -1 {
			return PageHandle{}, util.ErrNoAvailableFrame
		}
		f := &bp.frames[idx]
		if f.dirty {
			if err := bp.writeFrame(f); err != nil {
				return PageHandle{}, fmt.Errorf("evict page %d: %w", f.pageNum, err)
			}
		}
		if bp.metrics != nil {
			bp.metrics.Evictions.Inc()
		}
		bp.logger.Debug("evicted page",
			zap.Int64("victim", int64(f.pageNum)),
			zap.Int64("page", int64(pageNum)),
			zap.Int("frame", idx))
	}

	f := &bp.frames[idx]
	if f.data == nil {
		f.data = make([]byte, page.Size)
	}
	if err := bp.fm.ReadBlock(pageNum, f.data); err != nil {
		// Leave the frame empty: clean, unpinned, stamp unset.
		f.pageNum = page.NoPage
		f.fixCount = 0
		f.dirty = false
		f.hasStamp = false
		return PageHandle{}, fmt.Errorf("load page %d: %w", pageNum, err)
	}
	bp.readIO++
	if bp.metrics != nil {
		bp.metrics.DiskReads.Inc()
		bp.metrics.Misses.Inc()
	}

	f.pageNum = pageNum
	f.fixCount = 1
	f.dirty = false
	bp.touch(f) // seeds arrival order for FIFO, recency for LRU

	return PageHandle{Num: pageNum, Data: f.data}, nil
}

// Unpin drops one pin on pageNum.
func (bp *BufferPool) Unpin(pageNum page.Number) error {
	if bp.frames == nil {
		return util.ErrPoolNotInitialized
	}

	idx := bp.findResident(pageNum)
	if idx == -1 {
		return util.ErrPageNotFound
	}
	if bp.frames[idx].fixCount == 0 {
		return util.ErrPageNotPinned
	}
	bp.frames[idx].fixCount--
	return nil
}

// MarkDirty flags pageNum as modified relative to disk, regardless of its
// pin state.
func (bp *BufferPool) MarkDirty(pageNum page.Number) error {
	if bp.frames == nil {
		return util.ErrPoolNotInitialized
	}

	idx := bp.findResident(pageNum)
	if idx == -1 {
		return util.ErrPageNotFound
	}
	bp.frames[idx].dirty = true
	return nil
}

// ForceWrite writes pageNum's current bytes to disk immediately, independent
// of its dirty and pin state, and clears the dirty flag.
func (bp *BufferPool) ForceWrite(pageNum page.Number) error {
	if bp.frames == nil {
		return util.ErrPoolNotInitialized
	}

	idx := bp.findResident(pageNum)
	if idx == -1 {
		return util.ErrPageNotFound
	}
	return bp.writeFrame(&bp.frames[idx])
}

// ===================== HELPER FUNCTION =====================

// findResident returns the frame index holding pageNum, or -1. Negative
// numbers never match: they would collide with the NoPage sentinel on empty
// frames.
func (bp *BufferPool) findResident(pageNum page.Number) int {
	if pageNum < 0 {
		return -1
	}
	for i := range bp.frames {
		if bp.frames[i].pageNum == pageNum {
			return i
		}
	}
	return -1
}

// findEmpty returns the first frame holding no page, or -1.
func (bp *BufferPool) findEmpty() int {
	for i := range bp.frames {
		if bp.frames[i].pageNum == page.NoPage {
			return i
		}
	}
	return -1
}

// writeFrame writes the frame's bytes at its page's offset and marks it
// clean. Every call counts as one write I/O.
func (bp *BufferPool) writeFrame(f *frame) error {
	if err := bp.fm.WriteBlock(f.pageNum, f.data); err != nil {
		return err
	}
	bp.writeIO++
	if bp.metrics != nil {
		bp.metrics.DiskWrites.Inc()
	}
	f.dirty = false
	return nil
}
