package compare

import (
	"fmt"
	"github.com/gazelab/gazeline/gaze"
	"math"
)

// TransitionMatrix counts label-to-label transitions in a labeling and
// normalizes each row to sum to one. Rows and columns are indexed by
// label value, covering the whole label set; a label with no outgoing
// transitions keeps an all-zero row.
func TransitionMatrix(labels []gaze.EventLabel) [][]float64 {
	n := len(gaze.Labels())
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 1; i < len(labels); i++ {
		m[labels[i-1]][labels[i]] += 1
	}
	for _, row := range m {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if sum > 0 {
			for j := range row {
				row[j] /= sum
			}
		}
	}
	return m
}

func matrixShape(a, b [][]float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("mismatched matrices: %d rows against %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return fmt.Errorf("mismatched matrices: row %d has %d columns against %d", i, len(a[i]), len(b[i]))
		}
	}
	return nil
}

// Frobenius is the root of the summed squared entry differences.
func Frobenius(a, b [][]float64) (float64, error) {
	if err := matrixShape(a, b); err != nil {
		return math.NaN(), err
	}
	sum := 0.0
	for i := range a {
		for j := range a[i] {
			d := a[i][j] - b[i][j]
			sum += d * d
		}
	}
	return math.Sqrt(sum), nil
}

// L1 is the summed absolute entry differences.
func L1(a, b [][]float64) (float64, error) {
	if err := matrixShape(a, b); err != nil {
		return math.NaN(), err
	}
	sum := 0.0
	for i := range a {
		for j := range a[i] {
			sum += math.Abs(a[i][j] - b[i][j])
		}
	}
	return sum, nil
}

// StationaryDistribution approximates the stationary distribution of a
// row-stochastic matrix by power iteration from a uniform start. Mass
// lost to all-zero rows is renormalized away each step.
func StationaryDistribution(m [][]float64) []float64 {
	n := len(m)
	if n == 0 {
		return nil
	}
	cur := make([]float64, n)
	for i := range cur {
		cur[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < 1000; iter++ {
		for j := range next {
			next[j] = 0
		}
		for i := range m {
			if cur[i] == 0 {
				continue
			}
			for j, p := range m[i] {
				next[j] += cur[i] * p
			}
		}
		sum := 0.0
		for _, v := range next {
			sum += v
		}
		if sum == 0 {
			return cur
		}
		diff := 0.0
		for j := range next {
			next[j] /= sum
			if d := math.Abs(next[j] - cur[j]); d > diff {
				diff = d
			}
		}
		cur, next = next, cur
		if diff < 1e-12 {
			break
		}
	}
	return cur
}

// KLDivergence compares two transition matrices through the Kullback-
// Leibler divergence of their stationary distributions, in nats. It is
// +Inf when the first chain visits a state the second never does.
func KLDivergence(a, b [][]float64) (float64, error) {
	if err := matrixShape(a, b); err != nil {
		return math.NaN(), err
	}
	pa := StationaryDistribution(a)
	pb := StationaryDistribution(b)
	kl := 0.0
	for i := range pa {
		if pa[i] == 0 {
			continue
		}
		if pb[i] == 0 {
			return math.Inf(1), nil
		}
		kl += pa[i] * math.Log(pa[i]/pb[i])
	}
	return kl, nil
}
