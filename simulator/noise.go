package simulator

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

/*
ReadoutError flips measured bits on the listed qubits. P01 is the chance a
qubit in |0⟩ reads as 1 and P10 the chance a qubit in |1⟩ reads as 0, the
off-diagonal entries of the matrix [[1-P01, P01], [P10, 1-P10]].
*/
type ReadoutError struct {
	Qubits []int   `yaml:"qubits" json:"qubits"`
	P01    float64 `yaml:"p01" json:"p01"`
	P10    float64 `yaml:"p10" json:"p10"`
}

// NoiseModel is the noise the reference simulator understands.
type NoiseModel struct {
	Depolarizing float64        `yaml:"depolarizing" json:"depolarizing"`
	Readout      []ReadoutError `yaml:"readout" json:"readout,omitempty"`
}

// Validate rejects probabilities outside [0, 1].
func (model *NoiseModel) Validate() error {
	if !isProbability(model.Depolarizing) {
		return errors.Errorf("simulator: depolarizing probability %v outside [0,1]", model.Depolarizing)
	}

	for i, readout := range model.Readout {
		if !isProbability(readout.P01) || !isProbability(readout.P10) {
			return errors.Errorf(
				"simulator: readout error %d has probabilities (%v, %v) outside [0,1]",
				i, readout.P01, readout.P10,
			)
		}
	}

	return nil
}

// IsIdeal reports whether the model adds no noise at all.
func (model *NoiseModel) IsIdeal() bool {
	if model.Depolarizing > 0 {
		return false
	}

	for _, readout := range model.Readout {
		if readout.P01 > 0 || readout.P10 > 0 {
			return false
		}
	}

	return true
}

// LoadNoiseModel reads a YAML noise model from path.
func LoadNoiseModel(path string) (*NoiseModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "simulator: reading noise model")
	}

	model := &NoiseModel{}
	if err := yaml.Unmarshal(raw, model); err != nil {
		return nil, errors.Wrapf(err, "simulator: parsing noise model %s", path)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	return model, nil
}

// readoutTable folds the readout entries into per-qubit flip chances.
// Later entries for the same qubit win; qubits outside the register are ignored.
func (model *NoiseModel) readoutTable(qubits int) (p01, p10 []float64) {
	p01 = make([]float64, qubits)
	p10 = make([]float64, qubits)

	for _, readout := range model.Readout {
		for _, q := range readout.Qubits {
			if q < 0 || q >= qubits {
				continue
			}
			p01[q] = readout.P01
			p10[q] = readout.P10
		}
	}

	return p01, p10
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
