// Package nn provides the small feed-forward network the neural maze
// strategies train. The architecture follows the shape of the maze: two
// hidden layers as wide as the cell count, leaky rectified linear units and
// a linear head with one output per action. Training uses Adam on a mean
// squared error loss.
package nn

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/qmaze/qmaze/rl"
)

const (
	defaultLeakySlope   = 0.25
	defaultLearningRate = 1e-3

	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// Config describes a network architecture.
type Config struct {
	// Inputs is the observation size, the maze cell count.
	Inputs int
	// Hidden lists the hidden layer widths.
	Hidden []int
	// Outputs is the action count.
	Outputs int
	// LeakySlope is the negative-side slope of the hidden activations.
	LeakySlope float64
	// LearningRate is the Adam step size.
	LearningRate float64
	// Rand initializes the weights and shuffles training batches.
	Rand *rand.Rand
}

type layer struct {
	weights *mat.Dense // out x in
	bias    []float64

	// Adam moment estimates
	mW *mat.Dense
	vW *mat.Dense
	mB []float64
	vB []float64
}

// Network is a dense feed-forward action-value model.
type Network struct {
	config Config
	layers []*layer
	rng    *rand.Rand
	steps  int
}

var _ rl.Model = &Network{}

// New creates a network with randomly initialized weights.
func New(config *Config) *Network {
	cfg := *config
	if cfg.LeakySlope == 0 {
		cfg.LeakySlope = defaultLeakySlope
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = defaultLearningRate
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	n := &Network{
		config: cfg,
		rng:    rng,
	}
	sizes := layerSizes(cfg)
	for i := 1; i < len(sizes); i++ {
		n.layers = append(n.layers, newLayer(sizes[i], sizes[i-1], rng))
	}
	return n
}

func layerSizes(cfg Config) []int {
	sizes := []int{cfg.Inputs}
	sizes = append(sizes, cfg.Hidden...)
	return append(sizes, cfg.Outputs)
}

func newLayer(out, in int, rng *rand.Rand) *layer {
	weights := mat.NewDense(out, in, nil)
	std := math.Sqrt(2 / float64(in))
	for r := 0; r < out; r++ {
		for c := 0; c < in; c++ {
			weights.Set(r, c, rng.NormFloat64()*std)
		}
	}
	return &layer{
		weights: weights,
		bias:    make([]float64, out),
		mW:      mat.NewDense(out, in, nil),
		vW:      mat.NewDense(out, in, nil),
		mB:      make([]float64, out),
		vB:      make([]float64, out),
	}
}

func (n *Network) leaky(x float64) float64 {
	if x < 0 {
		return n.config.LeakySlope * x
	}
	return x
}

func (n *Network) leakyGrad(x float64) float64 {
	if x < 0 {
		return n.config.LeakySlope
	}
	return 1
}

// forward runs one observation through the network, returning all layer
// activations (activations[0] is the input) and pre-activations.
func (n *Network) forward(x []float64) (activations, preacts [][]float64) {
	activations = [][]float64{x}
	preacts = [][]float64{nil}

	a := x
	for li, l := range n.layers {
		out, _ := l.weights.Dims()
		z := make([]float64, out)
		for r := 0; r < out; r++ {
			sum := l.bias[r]
			for c, v := range a {
				sum += l.weights.At(r, c) * v
			}
			z[r] = sum
		}
		next := make([]float64, out)
		if li == len(n.layers)-1 {
			copy(next, z) // linear head
		} else {
			for i, v := range z {
				next[i] = n.leaky(v)
			}
		}
		preacts = append(preacts, z)
		activations = append(activations, next)
		a = next
	}
	return activations, preacts
}

// Predict returns the action-value vector for one observation.
func (n *Network) Predict(state []float64) []float64 {
	activations, _ := n.forward(state)
	out := activations[len(activations)-1]
	values := make([]float64, len(out))
	copy(values, out)
	return values
}

// Fit trains the network on the batch and returns the loss after training.
func (n *Network) Fit(inputs, targets *mat.Dense, config rl.FitConfig) float64 {
	rows, _ := inputs.Dims()
	epochs := config.Epochs
	if epochs <= 0 {
		epochs = 1
	}
	batchSize := config.BatchSize
	if batchSize <= 0 || batchSize > rows {
		batchSize = rows
	}

	for epoch := 0; epoch < epochs; epoch++ {
		perm := n.rng.Perm(rows)
		for start := 0; start < rows; start += batchSize {
			end := start + batchSize
			if end > rows {
				end = rows
			}
			n.fitBatch(inputs, targets, perm[start:end])
		}
	}
	return n.Evaluate(inputs, targets)
}

func (n *Network) fitBatch(inputs, targets *mat.Dense, batch []int) {
	gradsW := make([]*mat.Dense, len(n.layers))
	gradsB := make([][]float64, len(n.layers))
	for i, l := range n.layers {
		out, in := l.weights.Dims()
		gradsW[i] = mat.NewDense(out, in, nil)
		gradsB[i] = make([]float64, out)
	}

	for _, row := range batch {
		x := mat.Row(nil, row, inputs)
		t := mat.Row(nil, row, targets)
		activations, preacts := n.forward(x)

		// output delta of the squared error
		out := activations[len(activations)-1]
		delta := make([]float64, len(out))
		for i := range out {
			delta[i] = out[i] - t[i]
		}

		for li := len(n.layers) - 1; li >= 0; li-- {
			l := n.layers[li]
			prev := activations[li]
			for r, d := range delta {
				gradsB[li][r] += d
				for c, v := range prev {
					gradsW[li].Set(r, c, gradsW[li].At(r, c)+d*v)
				}
			}
			if li == 0 {
				break
			}
			nextDelta := make([]float64, len(prev))
			for c := range prev {
				sum := 0.0
				for r, d := range delta {
					sum += l.weights.At(r, c) * d
				}
				nextDelta[c] = sum * n.leakyGrad(preacts[li][c])
			}
			delta = nextDelta
		}
	}

	scale := 1 / float64(len(batch))
	n.steps++
	for li, l := range n.layers {
		n.adamStep(l, gradsW[li], gradsB[li], scale)
	}
}

// adamStep applies one Adam update with the averaged gradients.
func (n *Network) adamStep(l *layer, gW *mat.Dense, gB []float64, scale float64) {
	alpha := n.config.LearningRate
	c1 := 1 - math.Pow(adamBeta1, float64(n.steps))
	c2 := 1 - math.Pow(adamBeta2, float64(n.steps))

	out, in := l.weights.Dims()
	for r := 0; r < out; r++ {
		for c := 0; c < in; c++ {
			g := gW.At(r, c) * scale
			m := adamBeta1*l.mW.At(r, c) + (1-adamBeta1)*g
			v := adamBeta2*l.vW.At(r, c) + (1-adamBeta2)*g*g
			l.mW.Set(r, c, m)
			l.vW.Set(r, c, v)
			l.weights.Set(r, c, l.weights.At(r, c)-alpha*(m/c1)/(math.Sqrt(v/c2)+adamEpsilon))
		}
		g := gB[r] * scale
		m := adamBeta1*l.mB[r] + (1-adamBeta1)*g
		v := adamBeta2*l.vB[r] + (1-adamBeta2)*g*g
		l.mB[r] = m
		l.vB[r] = v
		l.bias[r] -= alpha * (m / c1) / (math.Sqrt(v/c2) + adamEpsilon)
	}
}

// Evaluate returns the mean squared error of the network on the batch.
func (n *Network) Evaluate(inputs, targets *mat.Dense) float64 {
	rows, cols := targets.Dims()
	sum := 0.0
	for r := 0; r < rows; r++ {
		pred := n.Predict(mat.Row(nil, r, inputs))
		for c := 0; c < cols; c++ {
			diff := pred[c] - targets.At(r, c)
			sum += diff * diff
		}
	}
	return sum / float64(rows*cols)
}
