package trend

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func seriesFrom(values []float64) []Observation {
	obs := make([]Observation, len(values))
	for i, v := range values {
		obs[i] = Observation{
			PropositionID:  "marcos_robredo_2028",
			Date:           day(i),
			ConsensusValue: v,
			AttentionValue: v,
		}
	}
	return obs
}

func TestSmooth_RampWindow7(t *testing.T) {
	obs := seriesFrom([]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0})

	points, err := Smooth(obs, 7)

	assert.Equal(t, nil, err)
	assert.Equal(t, 10, len(points))

	// Cold start: first six points pass the raw value through.
	for i := 0; i < 6; i++ {
		assert.Equal(t, obs[i].ConsensusValue, points[i].SmoothedConsensus)
		assert.Equal(t, obs[i].AttentionValue, points[i].SmoothedAttention)
	}

	assert.Equal(t, 0.4, points[6].SmoothedConsensus)
	assert.Equal(t, 0.7, points[9].SmoothedConsensus)
}

func TestSmooth_WindowOneIsIdentity(t *testing.T) {
	obs := seriesFrom([]float64{0.12, 0.99, 0.5, 0.0, 1.0})

	points, err := Smooth(obs, 1)

	assert.Equal(t, nil, err)
	for i, p := range points {
		assert.Equal(t, obs[i].ConsensusValue, p.SmoothedConsensus)
		assert.Equal(t, obs[i].AttentionValue, p.SmoothedAttention)
	}
}

func TestSmooth_RoundsToThreeDecimals(t *testing.T) {
	obs := seriesFrom([]float64{0.1, 0.2, 0.4})

	points, err := Smooth(obs, 3)

	assert.Equal(t, nil, err)
	// (0.1+0.2+0.4)/3 = 0.2333... -> 0.233
	assert.Equal(t, 0.233, points[2].SmoothedConsensus)
}

func TestSmooth_WindowLargerThanSeries(t *testing.T) {
	obs := seriesFrom([]float64{0.3, 0.6})

	points, err := Smooth(obs, 7)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(points))
	// Never enough history: every point is cold-start passthrough.
	assert.Equal(t, 0.3, points[0].SmoothedConsensus)
	assert.Equal(t, 0.6, points[1].SmoothedConsensus)
}

func TestSmooth_InvalidWindow(t *testing.T) {
	obs := seriesFrom([]float64{0.5})

	for _, window := range []int{0, -1, -7} {
		points, err := Smooth(obs, window)
		assert.Equal(t, ErrInvalidWindow, err)
		assert.Equal(t, 0, len(points))
	}
}

func TestSmooth_EmptyInput(t *testing.T) {
	points, err := Smooth(nil, 7)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(points))
}

func TestSmooth_SortsByDate(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	ordered := seriesFrom(values)

	shuffled := make([]Observation, len(ordered))
	copy(shuffled, ordered)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	want, err := Smooth(ordered, 7)
	assert.Equal(t, nil, err)

	got, err := Smooth(shuffled, 7)
	assert.Equal(t, nil, err)

	assert.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestSmooth_DoesNotModifyInput(t *testing.T) {
	obs := []Observation{
		{PropositionID: "p", Date: day(2), ConsensusValue: 0.9},
		{PropositionID: "p", Date: day(0), ConsensusValue: 0.1},
		{PropositionID: "p", Date: day(1), ConsensusValue: 0.5},
	}

	_, err := Smooth(obs, 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, day(2), obs[0].Date)
	assert.Equal(t, day(0), obs[1].Date)
}

func TestSmooth_CarriesRationaleFields(t *testing.T) {
	obs := []Observation{
		{
			PropositionID:      "sarah_duterte_wins_2028",
			Date:               day(0),
			ConsensusValue:     0.42,
			AttentionValue:     0.11,
			MovementAnalysis:   "steady vs yesterday",
			RationaleConsensus: "opposition narratives dominate",
			RationaleAttention: "low chatter",
			DataQuality:        0.8,
		},
	}

	points, err := Smooth(obs, 7)

	assert.Equal(t, nil, err)
	assert.Equal(t, obs[0], points[0].Observation)
}

func TestMajority(t *testing.T) {
	tests := []struct {
		name      string
		consensus float64
		want      bool
	}{
		{"below threshold", 0.499, false},
		{"exactly half counts", 0.5, true},
		{"above threshold", 0.7, true},
		{"zero", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SmoothedPoint{SmoothedConsensus: tt.consensus}
			assert.Equal(t, tt.want, p.Majority())
		})
	}
}

func TestSmoothAll_GroupsByProposition(t *testing.T) {
	var obs []Observation
	for i := 0; i < 3; i++ {
		obs = append(obs, Observation{PropositionID: "a", Date: day(i), ConsensusValue: 0.2})
		obs = append(obs, Observation{PropositionID: "b", Date: day(i), ConsensusValue: 0.8})
	}

	groups, err := SmoothAll(obs, 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(groups))
	assert.Equal(t, 3, len(groups["a"]))
	assert.Equal(t, 3, len(groups["b"]))
	assert.Equal(t, 0.2, groups["a"][2].SmoothedConsensus)
	assert.Equal(t, 0.8, groups["b"][2].SmoothedConsensus)
}

func TestSmoothAll_InvalidWindow(t *testing.T) {
	groups, err := SmoothAll(seriesFrom([]float64{0.5}), 0)

	assert.Equal(t, ErrInvalidWindow, err)
	assert.Equal(t, 0, len(groups))
}
