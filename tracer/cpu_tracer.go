package tracer

import (
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/penumbra/log"
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// Shared probe inputs and per-probe output slots.
	probes  []Ray
	results []VisibilityResult
	query   *VisibilityQuery

	// A channel for receiving block requests from the batch runner.
	blockReqChan chan BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for the last evaluated block.
	stats *Stats
}

// Create a new cpu tracer. Each cpu tracer runs a single worker
// goroutine; batch runners typically create one per hardware thread.
func NewCpuTracer(id string) BatchTracer {
	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		blockReqChan: make(chan BlockRequest),
		stats:        &Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers report the same unit speed estimate; the scheduler
// rebalances block sizes from per-batch timings instead.
func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

// Attach probe data and start the worker.
func (tr *cpuTracer) Setup(probes []Ray, results []VisibilityResult, query *VisibilityQuery) error {
	tr.Lock()
	defer tr.Unlock()

	if len(probes) != len(results) {
		return fmt.Errorf("cpu tracer: probe and result lengths mismatch (%d != %d)", len(probes), len(results))
	}
	if query == nil || query.Query == nil {
		return fmt.Errorf("cpu tracer: no scene query attached")
	}
	if tr.closeChan != nil {
		return fmt.Errorf("cpu tracer: already set up")
	}

	tr.probes = probes
	tr.results = results
	tr.query = query
	tr.closeChan = make(chan struct{})

	tr.wg.Add(1)
	go tr.worker()
	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}
	close(tr.closeChan)
	tr.wg.Wait()
	tr.closeChan = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq BlockRequest) {
	tr.blockReqChan <- blockReq
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *Stats {
	return tr.stats
}

func (tr *cpuTracer) worker() {
	defer tr.wg.Done()
	for {
		select {
		case <-tr.closeChan:
			return
		case blockReq := <-tr.blockReqChan:
			start := time.Now()

			end := blockReq.BlockStart + blockReq.BlockSize
			if int(end) > len(tr.probes) {
				blockReq.ErrChan <- fmt.Errorf("cpu tracer: block [%d, %d) exceeds probe count %d", blockReq.BlockStart, end, len(tr.probes))
				continue
			}

			for probeIndex := blockReq.BlockStart; probeIndex < end; probeIndex++ {
				tr.results[probeIndex] = TraceVisibilityRay(tr.probes[probeIndex], tr.query)
			}

			tr.stats.BlockSize = blockReq.BlockSize
			tr.stats.BlockTime = time.Since(start).Nanoseconds()
			blockReq.DoneChan <- blockReq.BlockSize
		}
	}
}
