package qbench

import (
	"context"
	"time"
)

// Job benchmarks one depth on a pool worker.
type Job struct {
	ID        string
	Depth     int
	Run       func(context.Context) (float64, error)
	StartTime time.Time
}

// Outcome is what a job leaves behind in the result space.
type Outcome struct {
	Probability float64
	Err         error
	CreatedAt   time.Time
}
