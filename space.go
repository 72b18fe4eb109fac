package qbench

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrPoolClosed is delivered to anyone still awaiting an outcome at shutdown.
var ErrPoolClosed = errors.New("pool closed before the job finished")

/*
ResultSpace hands job outcomes from workers to whoever awaits them. An
outcome stored before anyone awaits it is kept until the first Await; an
outcome with waiters is delivered to them and not kept.
*/
type ResultSpace struct {
	mu      sync.Mutex
	values  map[string]Outcome
	waiting map[string][]chan Outcome
	closed  bool
}

func NewResultSpace() *ResultSpace {
	return &ResultSpace{
		values:  make(map[string]Outcome),
		waiting: make(map[string][]chan Outcome),
	}
}

// Store records the outcome of job id and wakes its waiters.
func (rs *ResultSpace) Store(id string, outcome Outcome) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.closed {
		return
	}

	channels, ok := rs.waiting[id]
	if !ok {
		rs.values[id] = outcome
		return
	}

	for _, ch := range channels {
		ch <- outcome
		close(ch)
	}

	delete(rs.waiting, id)
}

// Await returns a channel that receives the outcome of job id exactly once.
func (rs *ResultSpace) Await(id string) chan Outcome {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	ch := make(chan Outcome, 1)

	if rs.closed {
		ch <- Outcome{Err: ErrPoolClosed, CreatedAt: time.Now()}
		close(ch)
		return ch
	}

	if outcome, ok := rs.values[id]; ok {
		delete(rs.values, id)
		ch <- outcome
		close(ch)
		return ch
	}

	rs.waiting[id] = append(rs.waiting[id], ch)
	return ch
}

// Close fails every pending Await with ErrPoolClosed.
func (rs *ResultSpace) Close() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.closed {
		return
	}

	rs.closed = true

	for id, channels := range rs.waiting {
		for _, ch := range channels {
			ch <- Outcome{Err: ErrPoolClosed, CreatedAt: time.Now()}
			close(ch)
		}
		delete(rs.waiting, id)
	}

	rs.values = make(map[string]Outcome)
}
