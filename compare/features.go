package compare

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/gazelab/gazeline/events"
	"github.com/gazelab/gazeline/gaze"
	"math"
)

// FeatureSamples pools per-event features for one event class.
type FeatureSamples struct {
	Durations      []float64
	AmplitudesDeg  []float64
	PeakVelocities []float64
}

// CollectFeatures groups event features by label so that two detectors'
// distributions can be tested against each other class by class.
func CollectFeatures(evs []events.Event, screen gaze.Screen) map[gaze.EventLabel]*FeatureSamples {
	out := make(map[gaze.EventLabel]*FeatureSamples)
	for i := range evs {
		ev := &evs[i]
		fs := out[ev.Label]
		if fs == nil {
			fs = &FeatureSamples{}
			out[ev.Label] = fs
		}
		fs.Durations = append(fs.Durations, ev.Duration())
		fs.AmplitudesDeg = append(fs.AmplitudesDeg, ev.AmplitudeDeg(screen))
		fs.PeakVelocities = append(fs.PeakVelocities, ev.PeakVelocityDeg(screen))
	}
	return out
}

// MannWhitneyU is the two-sided Mann-Whitney U test p-value for the null
// hypothesis that xs and ys come from the same distribution.
func MannWhitneyU(xs, ys []float64) (float64, error) {
	res, err := stats.MannWhitneyUTest(xs, ys, stats.LocationDiffers)
	if err != nil {
		return math.NaN(), err
	}
	return res.P, nil
}

// Summary aggregates one feature vector. All statistics are NaN when the
// vector is empty; StdDev is zero for a single value.
type Summary struct {
	N       int
	Mean    float64
	GeoMean float64
	Min     float64
	Max     float64
	StdDev  float64
}

func Summarize(values []float64) Summary {
	s := Summary{N: len(values)}
	if s.N == 0 {
		s.Mean = math.NaN()
		s.GeoMean = math.NaN()
		s.Min = math.NaN()
		s.Max = math.NaN()
		s.StdDev = math.NaN()
		return s
	}
	s.Mean = stats.Mean(values)
	s.GeoMean = stats.GeoMean(values)
	s.Min = values[0]
	s.Max = values[0]
	for _, v := range values[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	if s.N > 1 {
		sq := 0.0
		for _, v := range values {
			d := v - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.N-1))
	}
	return s
}
