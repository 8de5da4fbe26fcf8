package plugin

import (
	"sync/atomic"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/framework/process"
)

// blockSizeGuard protects the block context against hosts that run blocks
// larger than the maximum they announced.
type blockSizeGuard struct {
	ctx     *process.Context
	max     int
	last    int
	growths *atomic.Uint64
	log     *debug.Logger

	// first growth, written on the audio thread before growths moves off 0
	grownFrom atomic.Int64
	grownTo   atomic.Int64
	reported  atomic.Bool
}

// ensureCapacity grows the block context to hold n samples and raises the
// maximum. Growing allocates on the audio thread; a conforming host never
// triggers it. Nothing is logged here, see report.
func (g *blockSizeGuard) ensureCapacity(n int) bool {
	g.last = n
	if n <= g.max {
		return false
	}
	g.ctx.EnsureCapacity(n)
	if g.growths.Load() == 0 {
		g.grownFrom.Store(int64(g.max))
		g.grownTo.Store(int64(n))
	}
	g.max = n
	g.growths.Add(1)
	return true
}

// report logs the first growth once. It runs off the audio thread.
func (g *blockSizeGuard) report() {
	n := g.growths.Load()
	if n == 0 || !g.reported.CompareAndSwap(false, true) {
		return
	}
	g.log.Warn("host ran a block of %d samples, above the announced maximum of %d; buffers grown (%d growths so far)",
		g.grownTo.Load(), g.grownFrom.Load(), n)
}
