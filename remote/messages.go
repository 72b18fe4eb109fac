/*
Package remote puts a simulator behind HTTP. Server hosts any
qbench.Simulator, and Client implements qbench.Simulator by posting
circuits to a Server, so a benchmark can run against a simulator in another
process without knowing it.
*/
package remote

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/theapemachine/qbench"
	"github.com/theapemachine/qbench/simulator"
)

// SimulateRequest carries one circuit. Each gate is a row-major matrix of (re, im) pairs.
type SimulateRequest struct {
	ID       string                `json:"id"`
	Qubits   int                   `json:"qubits"`
	Gates    [][][2]float64        `json:"gates"`
	Measured []int                 `json:"measured"`
	Noise    *simulator.NoiseModel `json:"noise,omitempty"`
	Shots    int                   `json:"shots"`
	Stream   *uint64               `json:"stream,omitempty"`
}

// SimulateResponse carries either the counts or the reason there are none.
type SimulateResponse struct {
	ID     string           `json:"id"`
	Counts qbench.Histogram `json:"counts,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// DecodeMessage decodes a JSON message from reader.
func DecodeMessage[T any](reader io.Reader) (*T, error) {
	var msg T
	err := json.NewDecoder(reader).Decode(&msg)
	return &msg, err
}

// SerializeMessage encodes a message to JSON.
func SerializeMessage[T any](msg *T) ([]byte, error) {
	return json.Marshal(msg)
}

func encodeMatrix(m []complex128) [][2]float64 {
	out := make([][2]float64, len(m))
	for i, entry := range m {
		out[i] = [2]float64{real(entry), imag(entry)}
	}
	return out
}

func decodeMatrix(pairs [][2]float64) []complex128 {
	out := make([]complex128, len(pairs))
	for i, pair := range pairs {
		out[i] = complex(pair[0], pair[1])
	}
	return out
}

// circuit rebuilds the request as a circuit of dense gates.
func (req *SimulateRequest) circuit() (qbench.Circuit, error) {
	gates := make([]qbench.Operator, len(req.Gates))

	for i, pairs := range req.Gates {
		gate, err := simulator.NewDense(req.Qubits, decodeMatrix(pairs))
		if err != nil {
			return qbench.Circuit{}, errors.Wrapf(err, "remote: gate %d", i)
		}
		gates[i] = gate
	}

	return qbench.Circuit{Qubits: req.Qubits, Gates: gates, Measured: req.Measured}, nil
}
