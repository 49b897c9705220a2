package compare

import (
	"errors"
	"github.com/gazelab/gazeline/gaze"
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	ref := []gaze.EventLabel{gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade}
	pred := []gaze.EventLabel{gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Saccade}
	acc, err := Accuracy(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc != 0.75 {
		t.Errorf("wrong accuracy: %v instead of 0.75", acc)
	}
	if acc, _ := Accuracy(ref, ref); acc != 1 {
		t.Errorf("self-accuracy is %v instead of 1", acc)
	}
	if acc, err := Accuracy(nil, nil); err != nil || !math.IsNaN(acc) {
		t.Errorf("empty labelings should score NaN without error, got %v / %v", acc, err)
	}
}

func TestAccuracyShapeMismatch(t *testing.T) {
	ref := []gaze.EventLabel{gaze.Fixation, gaze.Fixation}
	pred := []gaze.EventLabel{gaze.Fixation}
	_, err := Accuracy(ref, pred)
	var shape *gaze.ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected a shape error, got %v", err)
	}
}

func TestBalancedAccuracyWeighsClassesEqually(t *testing.T) {
	var ref, pred []gaze.EventLabel
	for i := 0; i < 8; i++ {
		ref = append(ref, gaze.Fixation)
		pred = append(pred, gaze.Fixation)
	}
	ref = append(ref, gaze.Saccade, gaze.Saccade)
	pred = append(pred, gaze.Fixation, gaze.Fixation)
	acc, err := Accuracy(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc != 0.8 {
		t.Errorf("wrong accuracy: %v instead of 0.8", acc)
	}
	bal, err := BalancedAccuracy(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bal != 0.5 {
		t.Errorf("missing every saccade should halve balanced accuracy, got %v", bal)
	}
}

func TestCohenKappa(t *testing.T) {
	ref := []gaze.EventLabel{gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade}
	pred := []gaze.EventLabel{gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Saccade}
	kappa, err := CohenKappa(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(kappa-0.5) > 1e-9 {
		t.Errorf("wrong kappa: %v instead of 0.5", kappa)
	}
	if kappa, _ := CohenKappa(ref, ref); kappa != 1 {
		t.Errorf("self-kappa is %v instead of 1", kappa)
	}
}

func TestCohenKappaChanceLevel(t *testing.T) {
	ref := []gaze.EventLabel{gaze.Fixation, gaze.Saccade, gaze.Fixation, gaze.Saccade}
	pred := []gaze.EventLabel{gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade}
	kappa, err := CohenKappa(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(kappa) > 1e-9 {
		t.Errorf("agreement at chance level should score zero kappa, got %v", kappa)
	}
}

func TestCohenKappaConstantLabelings(t *testing.T) {
	labels := []gaze.EventLabel{gaze.Fixation, gaze.Fixation, gaze.Fixation}
	kappa, err := CohenKappa(labels, labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kappa != 1 {
		t.Errorf("identical constant labelings should score 1, got %v", kappa)
	}
}

func TestLevenshteinRatio(t *testing.T) {
	ref := []gaze.EventLabel{gaze.Fixation, gaze.Fixation, gaze.Saccade, gaze.Saccade}
	pred := []gaze.EventLabel{gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Saccade}
	ratio, err := LevenshteinRatio(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratio != 0.75 {
		t.Errorf("one substitution in four should score 0.75, got %v", ratio)
	}
	if ratio, _ := LevenshteinRatio(ref, ref); ratio != 1 {
		t.Errorf("identical sequences should score 1, got %v", ratio)
	}
	if ratio, _ := LevenshteinRatio(nil, nil); ratio != 1 {
		t.Errorf("empty sequences should score 1, got %v", ratio)
	}
}

func TestLevenshteinRatioShift(t *testing.T) {
	ref := []gaze.EventLabel{gaze.Fixation, gaze.Saccade, gaze.Saccade, gaze.Saccade}
	pred := []gaze.EventLabel{gaze.Saccade, gaze.Saccade, gaze.Saccade, gaze.Fixation}
	ratio, err := LevenshteinRatio(ref, pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratio != 0.5 {
		t.Errorf("shifting the fixation across should cost two edits, got ratio %v", ratio)
	}
}
