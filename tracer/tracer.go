package tracer

// A unit of work that is processed by a batch tracer: a contiguous
// range of probes from the shared probe list.
type BlockRequest struct {
	// First probe index and probe count for this block.
	BlockStart uint32
	BlockSize  uint32

	// A channel to signal on block completion with the number of
	// completed probes.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Batch tracer statistics.
type Stats struct {
	// The number of probes evaluated in the last block.
	BlockSize uint32

	// The time for evaluating the last block (in nanoseconds).
	BlockTime int64
}

// BatchTracer is implemented by workers that evaluate blocks of
// visibility probes against shared read-only scene data.
type BatchTracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Get the tracer's computation speed estimate compared to a
	// baseline implementation.
	SpeedEstimate() float32

	// Attach the shared probe list, the per-probe output slots and
	// the query template used for every probe.
	Setup(probes []Ray, results []VisibilityResult, query *VisibilityQuery) error

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last block statistics.
	Stats() *Stats
}
