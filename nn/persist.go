package nn

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
)

// A trained model is stored as two artifacts keyed by its name: an
// architecture description in <name>.json and the raw parameters in
// <name>.weights.

type architecture struct {
	Inputs       int     `json:"inputs"`
	Hidden       []int   `json:"hidden"`
	Outputs      int     `json:"outputs"`
	LeakySlope   float64 `json:"leaky_slope"`
	LearningRate float64 `json:"learning_rate"`
}

type layerWeights struct {
	Weights []float64 // out x in, row-major
	Bias    []float64
}

// Save writes the network's architecture and weights.
func (n *Network) Save(name string) error {
	arch := architecture{
		Inputs:       n.config.Inputs,
		Hidden:       n.config.Hidden,
		Outputs:      n.config.Outputs,
		LeakySlope:   n.config.LeakySlope,
		LearningRate: n.config.LearningRate,
	}
	bs, err := json.Marshal(arch)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name+".json", bs, 0644); err != nil {
		return err
	}

	f, err := os.Create(name + ".weights")
	if err != nil {
		return err
	}
	defer f.Close()

	weights := make([]layerWeights, len(n.layers))
	for i, l := range n.layers {
		out, in := l.weights.Dims()
		w := make([]float64, 0, out*in)
		for r := 0; r < out; r++ {
			for c := 0; c < in; c++ {
				w = append(w, l.weights.At(r, c))
			}
		}
		b := make([]float64, len(l.bias))
		copy(b, l.bias)
		weights[i] = layerWeights{Weights: w, Bias: b}
	}
	return gob.NewEncoder(f).Encode(weights)
}

// Load reads a network previously written with Save.
func Load(name string) (*Network, error) {
	bs, err := os.ReadFile(name + ".json")
	if err != nil {
		return nil, err
	}
	var arch architecture
	if err := json.Unmarshal(bs, &arch); err != nil {
		return nil, err
	}

	n := New(&Config{
		Inputs:       arch.Inputs,
		Hidden:       arch.Hidden,
		Outputs:      arch.Outputs,
		LeakySlope:   arch.LeakySlope,
		LearningRate: arch.LearningRate,
	})

	f, err := os.Open(name + ".weights")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var weights []layerWeights
	if err := gob.NewDecoder(f).Decode(&weights); err != nil {
		return nil, err
	}
	if len(weights) != len(n.layers) {
		return nil, fmt.Errorf("weights for %d layers, architecture has %d", len(weights), len(n.layers))
	}
	for i, l := range n.layers {
		out, in := l.weights.Dims()
		if len(weights[i].Weights) != out*in || len(weights[i].Bias) != out {
			return nil, fmt.Errorf("layer %d weights do not match the architecture", i)
		}
		for r := 0; r < out; r++ {
			for c := 0; c < in; c++ {
				l.weights.Set(r, c, weights[i].Weights[r*in+c])
			}
		}
		copy(l.bias, weights[i].Bias)
	}
	return n, nil
}
