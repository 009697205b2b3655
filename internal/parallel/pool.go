package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is a unit of work. worker is the index of the goroutine running it,
// in [0, Workers()), so jobs can own per-worker state such as a Pipeline
// without locks.
type Job func(worker int) error

// task is a queued job bound to its result slot.
type task func(worker int)

// WorkerPool runs jobs on a fixed set of goroutines.
//
// Each worker has its own queue and steals from the others when idle, which
// evens out frames of uneven cost.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// submit is held for reading while ExecuteAll queues jobs and for
	// writing while Close stops the workers, so every queued task is
	// drained.
	submit sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan task, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(id)
			return
		case job := <-own:
			job(id)
		default:
			if job := p.steal(id); job != nil {
				job(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(id)
				return
			case job := <-own:
				job(id)
			}
		}
	}
}

func (p *WorkerPool) drain(id int) {
	for {
		select {
		case job := <-p.queues[id]:
			job(id)
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) task {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ErrPoolClosed is returned by ExecuteAll after Close.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// ExecuteAll distributes jobs round-robin and blocks until all of them have
// run. The returned error joins the errors of the failed jobs in job order.
func (p *WorkerPool) ExecuteAll(jobs []Job) error {
	p.submit.RLock()
	if !p.running.Load() {
		p.submit.RUnlock()
		return ErrPoolClosed
	}

	errs := make([]error, len(jobs))
	var pending sync.WaitGroup
	pending.Add(len(jobs))
	for i, job := range jobs {
		p.queues[i%p.workers] <- func(worker int) {
			defer pending.Done()
			errs[i] = job(worker)
		}
	}
	p.submit.RUnlock()

	pending.Wait()
	return errors.Join(errs...)
}

// Close stops the pool after queued jobs have run. It waits for an
// ExecuteAll that is still queueing jobs. Close is safe to call multiple
// times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.submit.Lock()
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts jobs.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
