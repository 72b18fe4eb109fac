package qbench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// Pool runs benchmark jobs on a fixed set of workers.
type Pool struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workers    chan chan Job
	jobs       chan Job
	space      *ResultSpace
	metrics    *Metrics
	workerMu   sync.Mutex
	workerList []*Worker
	config     *Config
}

/*
NewPool starts size workers and a manager that hands queued jobs to
whichever worker is idle. queue bounds how many jobs may wait; Schedule
gives up on a full queue after the configured scheduling timeout.
*/
func NewPool(ctx context.Context, size, queue int, config *Config) *Pool {
	if size <= 0 {
		size = 1
	}

	if queue < size {
		queue = size
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:        ctx,
		cancel:     cancel,
		workers:    make(chan chan Job, size),
		jobs:       make(chan Job, queue),
		space:      NewResultSpace(),
		metrics:    NewMetrics(),
		workerList: make([]*Worker, 0, size),
		config:     config,
	}

	for i := 0; i < size; i++ {
		p.startWorker()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.manage()
	}()

	return p
}

func (p *Pool) manage() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			select {
			case <-p.ctx.Done():
				return
			case workerChan := <-p.workers:
				select {
				case workerChan <- job:
				case <-p.ctx.Done():
					return
				}
			}
		}
	}
}

/*
Schedule queues job and returns the channel its outcome will arrive on. A
job without an ID gets a fresh one. Jobs run once; a failed job is reported,
never retried.
*/
func (p *Pool) Schedule(job Job) chan Outcome {
	ctx, cancel := context.WithTimeout(p.ctx, p.schedulingTimeout())
	defer cancel()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	job.StartTime = time.Now()
	result := p.space.Await(job.ID)

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		p.metrics.recordSchedulingFailure()
		p.space.Store(job.ID, Outcome{
			Err:       fmt.Errorf("job scheduling timeout: %w", ctx.Err()),
			CreatedAt: time.Now(),
		})
	}

	return result
}

// Metrics returns the pool's live metrics.
func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

func (p *Pool) startWorker() {
	worker := &Worker{
		pool: p,
		jobs: make(chan Job),
	}

	p.workerMu.Lock()
	p.workerList = append(p.workerList, worker)
	p.workerMu.Unlock()

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run()
	}()
}

func (p *Pool) schedulingTimeout() time.Duration {
	if p.config != nil && p.config.SchedulingTimeout > 0 {
		return p.config.SchedulingTimeout
	}
	return 5 * time.Second
}

// Close stops the workers, waits for them, and fails any outcome still awaited.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.workerMu.Lock()
	errnie.Info("closing pool with %d workers", len(p.workerList))
	p.workerMu.Unlock()

	p.cancel()
	p.wg.Wait()

	p.workerMu.Lock()
	p.workerList = nil
	p.workerMu.Unlock()

	p.space.Close()
}
