// Package compare scores gaze labelings against each other, both sample by
// sample and through event feature distributions.
package compare

import (
	"github.com/gazelab/gazeline/gaze"
	"math"
)

// Accuracy is the fraction of samples on which the two labelings agree.
// NaN for empty labelings.
func Accuracy(ref, pred []gaze.EventLabel) (float64, error) {
	if err := gaze.CheckShape(len(ref), "prediction", len(pred)); err != nil {
		return math.NaN(), err
	}
	if len(ref) == 0 {
		return math.NaN(), nil
	}
	agree := 0
	for i := range ref {
		if ref[i] == pred[i] {
			agree += 1
		}
	}
	return float64(agree) / float64(len(ref)), nil
}

// BalancedAccuracy is the mean per-label recall, taken over the labels
// that actually occur in the reference. NaN for empty labelings.
func BalancedAccuracy(ref, pred []gaze.EventLabel) (float64, error) {
	if err := gaze.CheckShape(len(ref), "prediction", len(pred)); err != nil {
		return math.NaN(), err
	}
	if len(ref) == 0 {
		return math.NaN(), nil
	}
	total := make(map[gaze.EventLabel]int)
	hits := make(map[gaze.EventLabel]int)
	for i := range ref {
		total[ref[i]] += 1
		if pred[i] == ref[i] {
			hits[ref[i]] += 1
		}
	}
	sum := 0.0
	for label, count := range total {
		sum += float64(hits[label]) / float64(count)
	}
	return sum / float64(len(total)), nil
}

// CohenKappa is chance-corrected agreement between the two labelings.
// NaN for empty labelings; 1 when both labelings are the same constant.
func CohenKappa(ref, pred []gaze.EventLabel) (float64, error) {
	if err := gaze.CheckShape(len(ref), "prediction", len(pred)); err != nil {
		return math.NaN(), err
	}
	if len(ref) == 0 {
		return math.NaN(), nil
	}
	n := float64(len(ref))
	agree := 0
	refCount := make(map[gaze.EventLabel]int)
	predCount := make(map[gaze.EventLabel]int)
	for i := range ref {
		if ref[i] == pred[i] {
			agree += 1
		}
		refCount[ref[i]] += 1
		predCount[pred[i]] += 1
	}
	po := float64(agree) / n
	pe := 0.0
	for label, count := range refCount {
		pe += (float64(count) / n) * (float64(predCount[label]) / n)
	}
	if pe == 1 {
		return 1, nil
	}
	return (po - pe) / (1 - pe), nil
}

// LevenshteinRatio is one minus the normalized edit distance between the
// two label sequences, so 1 means identical. 1 for empty labelings.
func LevenshteinRatio(ref, pred []gaze.EventLabel) (float64, error) {
	if err := gaze.CheckShape(len(ref), "prediction", len(pred)); err != nil {
		return math.NaN(), err
	}
	n := len(ref)
	if n == 0 {
		return 1, nil
	}
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if ref[i-1] == pred[j-1] {
				cost = 0
			}
			best := prev[j-1] + cost
			if d := prev[j] + 1; d < best {
				best = d
			}
			if d := cur[j-1] + 1; d < best {
				best = d
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return 1 - float64(prev[n])/float64(n), nil
}
