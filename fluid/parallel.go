package fluid

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum row count to use the worker pool.
// Below this, single-threaded is faster due to dispatch overhead.
const parallelThreshold = 64

// rowChunk is a band of grid rows for one worker.
type rowChunk struct {
	start, end int
}

// workerPool runs per-stage row kernels across persistent goroutines.
// Every solver stage is embarrassingly parallel over cells but must
// fully complete before the next stage reads its output, so run blocks
// until all chunks finish. The pool is only ever driven by one caller
// at a time (the simulator holds its lock across a step).
type workerPool struct {
	numWorkers int

	workChan chan rowChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool

	// kernel for the in-flight dispatch; set before any chunk is sent
	fn func(start, end int)
}

func newWorkerPool() *workerPool {
	return &workerPool{numWorkers: runtime.GOMAXPROCS(0)}
}

func (p *workerPool) start() {
	if p.running {
		return
	}
	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *workerPool) stop() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run executes fn over row bands covering [start, end). Small ranges
// run inline on the calling goroutine.
func (p *workerPool) run(start, end int, fn func(start, end int)) {
	n := end - start
	if n <= 0 {
		return
	}
	if p == nil || !p.running || n < parallelThreshold {
		fn(start, end)
		return
	}

	p.fn = fn
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		s := start + w*chunkSize
		e := s + chunkSize
		if e > end {
			e = end
		}
		if s >= e {
			continue
		}
		p.workChan <- rowChunk{start: s, end: e}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
	p.fn = nil
}
