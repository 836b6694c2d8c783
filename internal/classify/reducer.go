package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LinearReducer applies a projection fit offline: (x - mean) · componentsᵀ.
type LinearReducer struct {
	mean       []float64
	components [][]float64
}

type linearArtifact struct {
	Mean       []float64   `json:"mean"`
	Components [][]float64 `json:"components"`
}

// NewLinearReducer validates the shapes and builds a reducer.
func NewLinearReducer(mean []float64, components [][]float64) (*LinearReducer, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("reducer: empty mean vector")
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("reducer: no components")
	}
	for i, row := range components {
		if len(row) != len(mean) {
			return nil, fmt.Errorf("reducer: component %d has %d values, expected %d", i, len(row), len(mean))
		}
	}
	return &LinearReducer{mean: mean, components: components}, nil
}

// LoadLinearReducer reads a JSON artifact {"mean": [...], "components": [[...], ...]}.
func LoadLinearReducer(path string) (*LinearReducer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reducer: %w", err)
	}
	defer f.Close()
	return DecodeLinearReducer(f)
}

// DecodeLinearReducer reads a reducer artifact from r.
func DecodeLinearReducer(r io.Reader) (*LinearReducer, error) {
	var a linearArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode reducer: %w", err)
	}
	return NewLinearReducer(a.Mean, a.Components)
}

func (r *LinearReducer) Dim() int { return len(r.components) }

// InputDim is the vector length Reduce accepts.
func (r *LinearReducer) InputDim() int { return len(r.mean) }

func (r *LinearReducer) Reduce(vec []float64) ([]float64, error) {
	if len(vec) != len(r.mean) {
		return nil, fmt.Errorf("reducer: input has %d values, expected %d", len(vec), len(r.mean))
	}
	out := make([]float64, len(r.components))
	for i, row := range r.components {
		var sum float64
		for j, w := range row {
			sum += (vec[j] - r.mean[j]) * w
		}
		out[i] = sum
	}
	return out, nil
}
