package trend

import (
	"errors"
	"math"
	"sort"
	"time"
)

// DefaultWindow is the trailing window used by the dashboard charts.
const DefaultWindow = 7

// ErrInvalidWindow is returned when the requested window is smaller than 1.
var ErrInvalidWindow = errors.New("trend: window must be at least 1")

// Observation is one day's raw scores for a proposition. The rationale
// fields are opaque to the smoother and carried through unchanged.
type Observation struct {
	PropositionID      string
	Date               time.Time
	ConsensusValue     float64
	AttentionValue     float64
	MovementAnalysis   string
	RationaleConsensus string
	RationaleAttention string
	DataQuality        float64
}

// SmoothedPoint is an Observation plus its trailing moving averages.
type SmoothedPoint struct {
	Observation
	SmoothedConsensus float64
	SmoothedAttention float64
}

// Majority reports whether the smoothed consensus classifies the point as
// majority agreement. Exactly 0.5 counts as majority.
func (p SmoothedPoint) Majority() bool {
	return p.SmoothedConsensus >= 0.5
}

// Smooth derives a trailing moving average series from one proposition's
// daily observations. The input is re-sorted ascending by date, so callers
// need not guarantee ordering. For the first window-1 points there is not
// enough history for a full window and the raw value stands in for the
// average, so charts never start with a gap. Once filled, each point is the
// arithmetic mean of the last window values, rounded to 3 decimals.
//
// The input slice is not modified. Values outside [0,1] are not validated
// here; that is the ingestion layer's job.
func Smooth(observations []Observation, window int) ([]SmoothedPoint, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}

	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]SmoothedPoint, 0, len(sorted))

	for i, obs := range sorted {
		p := SmoothedPoint{Observation: obs}

		if i < window-1 {
			// Cold start: the window is not filled yet.
			p.SmoothedConsensus = obs.ConsensusValue
			p.SmoothedAttention = obs.AttentionValue
		} else {
			var sumConsensus, sumAttention float64
			for _, prev := range sorted[i-window+1 : i+1] {
				sumConsensus += prev.ConsensusValue
				sumAttention += prev.AttentionValue
			}
			p.SmoothedConsensus = round3(sumConsensus / float64(window))
			p.SmoothedAttention = round3(sumAttention / float64(window))
		}

		points = append(points, p)
	}

	return points, nil
}

// SmoothAll groups a mixed-proposition slice by proposition ID and smooths
// each group independently.
func SmoothAll(observations []Observation, window int) (map[string][]SmoothedPoint, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}

	groups := make(map[string][]Observation)
	for _, obs := range observations {
		groups[obs.PropositionID] = append(groups[obs.PropositionID], obs)
	}

	result := make(map[string][]SmoothedPoint, len(groups))
	for id, group := range groups {
		points, err := Smooth(group, window)
		if err != nil {
			return nil, err
		}
		result[id] = points
	}

	return result, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
