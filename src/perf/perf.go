package perf

import (
	"context"
	"sync"
	"time"
)

type RequestPerf struct {
	Route  string
	Path   string // the path actually matched
	Method string
	Start  time.Time
	End    time.Time

	// Blocks may be started from several goroutines when a handler fans out
	// API calls, hence the lock.
	mu     sync.Mutex
	Blocks []PerfBlock
}

func MakeNewRequestPerf(route string, method string, path string) *RequestPerf {
	return &RequestPerf{
		Start:  time.Now(),
		Route:  route,
		Path:   path,
		Method: method,
	}
}

func (rp *RequestPerf) EndRequest() {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	now := time.Now()
	for i := range rp.Blocks {
		if rp.Blocks[i].End.IsZero() {
			rp.Blocks[i].End = now
		}
	}
	rp.End = now
}

func (rp *RequestPerf) Checkpoint(category, description string) {
	now := time.Now()
	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.Blocks = append(rp.Blocks, PerfBlock{
		Start:       now,
		End:         now,
		Category:    category,
		Description: description,
	})
}

type BlockHandle struct {
	rp    *RequestPerf
	index int
}

// StartBlock opens a timed block. Call End on the result when the work is done.
func (rp *RequestPerf) StartBlock(category, description string) BlockHandle {
	if rp == nil {
		return BlockHandle{}
	}
	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.Blocks = append(rp.Blocks, PerfBlock{
		Start:       time.Now(),
		Category:    category,
		Description: description,
	})
	return BlockHandle{rp: rp, index: len(rp.Blocks) - 1}
}

func (b BlockHandle) End() {
	if b.rp == nil {
		return
	}
	b.rp.mu.Lock()
	defer b.rp.mu.Unlock()
	if b.rp.Blocks[b.index].End.IsZero() {
		b.rp.Blocks[b.index].End = time.Now()
	}
}

// Snapshot returns a copy of the blocks recorded so far.
func (rp *RequestPerf) Snapshot() []PerfBlock {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return append([]PerfBlock(nil), rp.Blocks...)
}

func (rp *RequestPerf) MsFromStart(block *PerfBlock) float64 {
	return float64(block.Start.Sub(rp.Start).Nanoseconds()) / 1000 / 1000
}

func (rp *RequestPerf) TotalMs() float64 {
	return float64(rp.End.Sub(rp.Start).Nanoseconds()) / 1000 / 1000
}

type PerfBlock struct {
	Start       time.Time
	End         time.Time
	Category    string
	Description string
}

func (pb *PerfBlock) Duration() time.Duration {
	return pb.End.Sub(pb.Start)
}

func (pb *PerfBlock) DurationMs() float64 {
	return float64(pb.Duration().Nanoseconds()) / 1000 / 1000
}

type perfContextKey struct{}

var PerfContextKey = perfContextKey{}

func AttachPerfToContext(ctx context.Context, rp *RequestPerf) context.Context {
	return context.WithValue(ctx, PerfContextKey, rp)
}

// ExtractPerf returns the request perf carried by ctx, or nil. All methods on
// a nil *RequestPerf that open blocks are safe to call.
func ExtractPerf(ctx context.Context) *RequestPerf {
	rp, _ := ctx.Value(PerfContextKey).(*RequestPerf)
	return rp
}
