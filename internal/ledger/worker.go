package ledger

import (
	"sync"
	"time"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// SeriesRequest asks the worker for one kind's balance series over the
// closed range [From, To].
type SeriesRequest struct {
	Snapshot *Snapshot
	Kind     model.Kind
	From     time.Time
	To       time.Time
}

// SeriesResult carries the finished points for a request that was still
// the latest when its computation ended.
type SeriesResult struct {
	Request SeriesRequest
	Points  []Point
}

// SeriesWorker computes balance series on a single background goroutine
// so long sweeps stay off the interactive path. Submit supersedes any
// in-flight request: when a newer request arrives, the stale
// computation's result is silently discarded rather than delivered.
type SeriesWorker struct {
	mu     sync.Mutex
	gen    uint64
	latest chan job

	results chan SeriesResult
	done    chan struct{}
	wg      sync.WaitGroup
}

type job struct {
	gen uint64
	req SeriesRequest
}

// NewSeriesWorker starts the worker goroutine.
func NewSeriesWorker() *SeriesWorker {
	w := &SeriesWorker{
		latest:  make(chan job, 1),
		results: make(chan SeriesResult, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Submit queues a request, replacing any not-yet-started one. The
// matching result, if still current on completion, arrives on Results.
func (w *SeriesWorker) Submit(req SeriesRequest) {
	w.mu.Lock()
	w.gen++
	j := job{gen: w.gen, req: req}
	w.mu.Unlock()

	// Drop a queued-but-unstarted job in favor of the new one.
	select {
	case <-w.latest:
	default:
	}
	select {
	case w.latest <- j:
	case <-w.done:
	}
}

// Results delivers series for requests that were not superseded.
func (w *SeriesWorker) Results() <-chan SeriesResult {
	return w.results
}

// Close stops the worker and waits for the goroutine to exit.
func (w *SeriesWorker) Close() {
	close(w.done)
	w.wg.Wait()
}

func (w *SeriesWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case j := <-w.latest:
			points := j.req.Snapshot.SeriesPoints(j.req.Kind, j.req.From, j.req.To)

			w.mu.Lock()
			current := j.gen == w.gen
			w.mu.Unlock()
			if !current {
				continue // superseded mid-computation
			}

			// Replace an unconsumed result rather than blocking.
			select {
			case <-w.results:
			default:
			}
			select {
			case w.results <- SeriesResult{Request: j.req, Points: points}:
			case <-w.done:
				return
			}
		}
	}
}
