// Package parallel provides the worker pool that shades frame bands concurrently.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when work is submitted to a closed pool.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// WorkerPool is a fixed set of goroutines that execute batches of tasks.
//
// Each call to [WorkerPool.Run] is a barrier: it returns only once every task of
// the batch has finished, so the caller observes all writes made by the tasks.
// WorkerPool is safe for concurrent use; concurrent batches interleave on the same workers.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	// closeMu is held for reading while a batch is being queued so that Close
	// never closes done in the middle of a submission.
	closeMu sync.RWMutex
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}
	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for w := 0; w < workers; w++ {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain so that no batch is left waiting on its barrier.
			for {
				select {
				case work := <-p.queue:
					work()
				default:
					return
				}
			}
		case work := <-p.queue:
			work()
		}
	}
}

// Run executes fn(i) for every i in [0,n) across the workers and waits for all
// of them to return. A panic in a task is recovered and reported as an error
// after the whole batch has finished.
func (p *WorkerPool) Run(n int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	p.closeMu.RLock()
	if !p.running.Load() {
		p.closeMu.RUnlock()
		return ErrPoolClosed
	}
	var (
		batch    sync.WaitGroup
		panicked atomic.Pointer[any]
	)
	batch.Add(n)
	for i := 0; i < n; i++ {
		i := i
		p.queue <- func() {
			defer batch.Done()
			defer func() {
				if r := recover(); r != nil {
					panicked.CompareAndSwap(nil, &r)
				}
			}()
			fn(i)
		}
	}
	p.closeMu.RUnlock()
	batch.Wait()
	if r := panicked.Load(); r != nil {
		return &TaskPanicError{Value: *r}
	}
	return nil
}

// TaskPanicError reports a panic recovered from a task.
type TaskPanicError struct {
	Value any
}

func (e *TaskPanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "parallel: task panicked: " + err.Error()
	}
	if s, ok := e.Value.(string); ok {
		return "parallel: task panicked: " + s
	}
	return "parallel: task panicked"
}

// Close stops the workers after all queued tasks have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.closeMu.Unlock()
		return
	}
	close(p.done)
	p.closeMu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Bands splits [0,total) into at most n contiguous ranges of near-equal size.
// Every index belongs to exactly one band. Bands returns nil if total is 0.
func Bands(total, n int) [][2]int {
	if total <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	if n > total {
		n = total
	}
	bands := make([][2]int, n)
	size, rem := total/n, total%n
	start := 0
	for i := range bands {
		end := start + size
		if i < rem {
			end++
		}
		bands[i] = [2]int{start, end}
		start = end
	}
	return bands
}
