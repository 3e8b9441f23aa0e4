package llm

import (
	"fmt"
	"time"
)

type ScoreInput struct {
	Proposition        string
	SearchQueries      []string
	YesterdayConsensus float64
	YesterdayAttention float64
	TargetDate         time.Time
}

type ScoreResult struct {
	ConsensusValue     float64
	AttentionValue     float64
	MovementAnalysis   string
	RationaleConsensus string
	RationaleAttention string
	DataQuality        float64
	PromptVersion      string
	ModelUsed          string
}

// Validate checks the score ranges at the ingestion boundary. Downstream
// consumers, the trend smoother included, assume values in [0,1] and do not
// re-check.
func (r *ScoreResult) Validate() error {
	if r.ConsensusValue < 0 || r.ConsensusValue > 1 {
		return fmt.Errorf("consensus_value %v out of range [0,1]", r.ConsensusValue)
	}
	if r.AttentionValue < 0 || r.AttentionValue > 1 {
		return fmt.Errorf("attention_value %v out of range [0,1]", r.AttentionValue)
	}
	if r.DataQuality < 0 || r.DataQuality > 1 {
		return fmt.Errorf("data_quality %v out of range [0,1]", r.DataQuality)
	}
	return nil
}

type Client interface {
	Score(input ScoreInput) (*ScoreResult, error)
}
