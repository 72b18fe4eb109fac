package qbench

import "strings"

// Evaluator reduces a histogram to the probability of surviving in |0…0⟩.
type Evaluator struct {
	target string
}

// NewEvaluator creates an evaluator. A non-positive qubit count is coerced to 1.
func NewEvaluator(qubits int) *Evaluator {
	return &Evaluator{
		target: strings.Repeat("0", coerceQubits(qubits)),
	}
}

// Target is the all-zero bitstring counted as a survival.
func (e *Evaluator) Target() string {
	return e.target
}

// Evaluate returns the share of trials that measured Target, or 0 with no trials.
func (e *Evaluator) Evaluate(h Histogram) float64 {
	trials := h.Total()
	if trials == 0 {
		return 0.0
	}

	return float64(h[e.target]) / float64(trials)
}
