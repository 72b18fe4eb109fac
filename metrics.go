package qbench

import (
	"slices"
	"sync"
	"time"
)

// Metrics tracks how the pool's benchmark jobs went.
type Metrics struct {
	mu                 sync.RWMutex
	WorkerCount        int
	JobCount           int64
	FailedJobs         int64
	SchedulingFailures int64
	TotalJobTime       time.Duration
	AverageJobLatency  time.Duration
	P95JobLatency      time.Duration
	JobSuccessRate     float64

	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 256),
		windowSize: 256,
	}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += duration
	m.JobCount++

	if !success {
		m.FailedJobs++
	}

	m.JobSuccessRate = float64(m.JobCount-m.FailedJobs) / float64(m.JobCount)
	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := slices.Clone(m.latencies)
	slices.Sort(sorted)

	p95 := int(float64(len(sorted)) * 0.95)
	if p95 >= len(sorted) {
		p95 = len(sorted) - 1
	}
	m.P95JobLatency = sorted[p95]
}

func (m *Metrics) recordSchedulingFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchedulingFailures++
}

// Export snapshots the metrics for logging.
func (m *Metrics) Export() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count":        m.WorkerCount,
		"job_count":           m.JobCount,
		"failed_jobs":         m.FailedJobs,
		"scheduling_failures": m.SchedulingFailures,
		"success_rate":        m.JobSuccessRate,
		"avg_latency_ms":      m.AverageJobLatency.Milliseconds(),
		"p95_latency_ms":      m.P95JobLatency.Milliseconds(),
	}
}
