package qbench

import (
	"time"

	"github.com/theapemachine/errnie"
)

// Worker processes jobs handed to it by the pool's manager.
type Worker struct {
	pool *Pool
	jobs chan Job
}

func (w *Worker) run() {
	ctx := w.pool.ctx

	for {
		select {
		case w.pool.workers <- w.jobs:
		case <-ctx.Done():
			return
		}

		select {
		case job := <-w.jobs:
			w.pool.space.Store(job.ID, w.processJob(job))
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) processJob(job Job) Outcome {
	probability, err := job.Run(w.pool.ctx)
	w.pool.metrics.recordJobExecution(job.StartTime, err == nil)

	if err != nil {
		errnie.Info("job %s (depth %d) failed: %v", job.ID, job.Depth, err)
	}

	return Outcome{
		Probability: probability,
		Err:         err,
		CreatedAt:   time.Now(),
	}
}
