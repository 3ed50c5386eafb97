// Package parallel runs independent rendering jobs on a fixed set of
// worker goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is one unit of work. It receives the state owned by the worker
// that runs it.
type Job[S any] func(ctx context.Context, state S) error

type task[S any] struct {
	ctx  context.Context
	job  Job[S]
	done func(error)
}

// WorkerPool is a pool of goroutines, each owning one state value.
//
// Jobs are queued round-robin on per-worker queues; an idle worker
// steals from the others. A job always runs with the state of the
// worker executing it, so two jobs never use the same state at the same
// time. This lets each worker keep its own renderer and scratch arenas.
//
// WorkerPool is safe for concurrent use.
type WorkerPool[S any] struct {
	workers int
	states  []S
	queues  []chan task[S]
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	next    atomic.Uint64
}

// NewWorkerPool starts a pool of the given size. newState is called
// once per worker. If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool[S any](workers int, newState func(worker int) S) *WorkerPool[S] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool[S]{
		workers: workers,
		states:  make([]S, workers),
		queues:  make([]chan task[S], workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.states[i] = newState(i)
		p.queues[i] = make(chan task[S], queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool[S]) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(id)
			return
		case t := <-own:
			p.run(id, t)
		default:
			if t, ok := p.steal(id); ok {
				p.run(id, t)
				continue
			}
			select {
			case <-p.done:
				p.drain(id)
				return
			case t := <-own:
				p.run(id, t)
			}
		}
	}
}

func (p *WorkerPool[S]) run(id int, t task[S]) {
	err := t.ctx.Err()
	if err == nil {
		err = t.job(t.ctx, p.states[id])
	}
	if t.done != nil {
		t.done(err)
	}
}

func (p *WorkerPool[S]) drain(id int) {
	for {
		select {
		case t := <-p.queues[id]:
			p.run(id, t)
		default:
			return
		}
	}
}

func (p *WorkerPool[S]) steal(id int) (task[S], bool) {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case t := <-p.queues[i]:
			return t, true
		default:
		}
	}
	return task[S]{}, false
}

// ErrClosed is returned for jobs submitted after Close.
var ErrClosed = errors.New("parallel: pool closed")

func (p *WorkerPool[S]) enqueue(t task[S]) bool {
	if !p.running.Load() {
		return false
	}
	q := p.queues[p.next.Add(1)%uint64(p.workers)] //nolint:gosec // workers > 0
	select {
	case q <- t:
		return true
	case <-p.done:
		return false
	}
}

// Run executes jobs and waits for all of them. Errors are joined in
// job order. Jobs that have not started when ctx is cancelled fail with
// the context error.
func (p *WorkerPool[S]) Run(ctx context.Context, jobs []Job[S]) error {
	if len(jobs) == 0 {
		return nil
	}
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		t := task[S]{ctx: ctx, job: job, done: func(err error) {
			errs[i] = err
			wg.Done()
		}}
		if !p.enqueue(t) {
			errs[i] = ErrClosed
			wg.Done()
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Submit queues a single job without waiting. done, if not nil, is
// called with its result from the worker goroutine.
func (p *WorkerPool[S]) Submit(ctx context.Context, job Job[S], done func(error)) {
	if job == nil {
		return
	}
	if !p.enqueue(task[S]{ctx: ctx, job: job, done: done}) && done != nil {
		done(ErrClosed)
	}
}

// Close stops accepting work, runs what is queued and stops the
// workers. Close is safe to call more than once.
func (p *WorkerPool[S]) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()

	// Jobs that raced with Close are failed rather than lost.
	for _, q := range p.queues {
		for len(q) > 0 {
			if t := <-q; t.done != nil {
				t.done(ErrClosed)
			}
		}
	}
}

// Workers returns the number of workers.
func (p *WorkerPool[S]) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool[S]) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns an approximate count of queued jobs.
func (p *WorkerPool[S]) QueuedWork() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}
