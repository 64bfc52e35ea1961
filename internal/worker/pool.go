package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job
type Result interface {
	GetError() error
}

type indexedResult struct {
	index  int
	result Result
}

type indexedJob struct {
	index int
	job   Job
}

// Pool runs jobs on a fixed number of workers and returns results in submission order
type Pool struct {
	workers    int
	jobQueue   chan indexedJob
	results    chan indexedResult
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once

	submitted int
	collected map[int]Result
	done      chan struct{}
}

// NewPool creates a pool with the given number of workers (at least one)
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:   workers,
		jobQueue:  make(chan indexedJob, workers*2),
		results:   make(chan indexedResult),
		collected: make(map[int]Result),
		done:      make(chan struct{}),
	}
}

// Start launches the workers. Cancelling ctx stops them after their current job.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancelFunc = context.WithCancel(ctx)

	// The collector drains results so workers never block on a full channel
	go func() {
		defer close(p.done)
		for r := range p.results {
			p.collected[r.index] = r.result
		}
	}()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case j, ok := <-p.jobQueue:
			if !ok || p.ctx.Err() != nil {
				return
			}
			p.results <- indexedResult{index: j.index, result: j.job.Execute(p.ctx)}
		}
	}
}

// Submit queues a job. It must be called from a single goroutine.
// Jobs submitted after cancellation are dropped and have a nil result.
func (p *Pool) Submit(job Job) {
	j := indexedJob{index: p.submitted, job: job}
	p.submitted++

	if p.ctx.Err() != nil {
		return
	}

	select {
	case <-p.ctx.Done():
	case p.jobQueue <- j:
	}
}

// Wait closes the queue, waits for the workers and returns one entry per submitted job.
// Entries for jobs that never ran are nil.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.done

	out := make([]Result, p.submitted)
	for i, r := range p.collected {
		out[i] = r
	}

	p.cancelFunc()
	return out
}

// Shutdown cancels pending jobs. Call Wait to collect what finished.
func (p *Pool) Shutdown() {
	p.cancelFunc()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
