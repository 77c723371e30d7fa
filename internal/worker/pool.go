package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

// Pool fans independent jobs out to a fixed set of workers. Workers share
// no state; results are collected over a channel. The triage pipeline
// itself is strictly sequential — the pool exists only for the integrity
// recheck, where each file hash is independent.
type Pool struct {
	workers     int
	jobs        chan Job
	results     chan Result
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	collected   []Result
	collectDone chan struct{}
}

// NewPool creates a pool with the given worker count
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers:     workers,
		jobs:        make(chan Job, workers*2),
		results:     make(chan Result, workers*2),
		ctx:         ctx,
		cancel:      cancel,
		collectDone: make(chan struct{}),
	}
}

// Start launches the workers and the result collector. The collector
// drains results as workers produce them, so Submit never blocks on a
// full result buffer no matter how many jobs are queued.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go func() {
		defer close(p.collectDone)
		for result := range p.results {
			p.collected = append(p.collected, result)
		}
	}()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for all jobs to finish, and returns every
// result. Result order is completion order, not submission order.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone
	return p.collected
}

// Shutdown cancels outstanding work immediately
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
