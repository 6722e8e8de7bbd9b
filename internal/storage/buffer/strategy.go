package buffer

import (
	"strings"

	util "github.com/bietkhonhungvandi212/pool-db/internal/utils"
)

// Strategy selects the replacement policy, fixed at pool initialization.
// Both policies share one victim scan over a single per-frame stamp and
// differ only in when the stamp is refreshed: FIFO stamps a frame once at
// load time (arrival order), LRU re-stamps it on every hit (access order).
type Strategy int

const (
	FIFO Strategy = iota
	LRU
)

func (s Strategy) String() string {
	switch s {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	default:
		return "UNKNOWN"
	}
}

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	default:
		return 0, util.ErrUnknownStrategy
	}
}

// clockThreshold bounds the logical clock. Past it the clock and every set
// stamp reset to zero; absolute stamp values are meaningless, only the
// relative order among resident pages matters, and a momentary tie after the
// reset resolves by scan order.
const clockThreshold = 32000

// touch stamps the frame with the current logical clock and advances it.
func (bp *BufferPool) touch(f *frame) {
	f.stamp = bp.clock
	f.hasStamp = true
	bp.clock++
	if bp.clock > clockThreshold {
		bp.normalizeClock()
	}
}

func (bp *BufferPool) normalizeClock() {
	bp.clock = 0
	for i := range bp.frames {
		if bp.frames[i].hasStamp {
			bp.frames[i].stamp = 0
		}
	}
}

// selectVictim scans all frames and picks the eviction victim: pinned frames
// are skipped, a frame whose stamp was never set wins immediately, otherwise
// the smallest stamp wins with ties going to the first frame in scan order.
// Returns -1 when every frame is pinned.
func (bp *BufferPool) selectVictim() int {
	victim := -1
	minStamp := 0
	for i := range bp.frames {
		f := &bp.frames[i]
		if f.fixCount != 0 {
			continue
		}
		if !f.hasStamp {
			return i
		}
		if victim == -1 || f.stamp < minStamp {
			victim = i
			minStamp = f.stamp
		}
	}
	return victim
}
