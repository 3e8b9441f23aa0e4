package model

import "time"

// Default anchors handed to the LLM when no record exists for the previous
// day: 0.50 is perfect polarization or apathy, 0.10 is low chatter.
const (
	DefaultConsensus = 0.50
	DefaultAttention = 0.10
)

// Sentiment is one day's scores for a proposition. Unique per
// (proposition_id, date_generated), enforced by the sentiment table.
type Sentiment struct {
	ID                 int64
	PropositionID      string
	DateGenerated      time.Time
	ConsensusValue     float64
	AttentionValue     float64
	MovementAnalysis   string
	RationaleConsensus string
	RationaleAttention string
	DataQuality        float64
	ModelUsed          string
	PromptVersion      string
	CreatedAt          time.Time
}

// ScoreJob is the queue payload between the scheduler and the analyzer.
type ScoreJob struct {
	PropositionID string `json:"proposition_id"`
	Date          string `json:"date"`
}

type ScoringError struct {
	ID            int64
	PropositionID string
	DateGenerated time.Time
	ErrorMessage  string
	ErrorType     string
	CreatedAt     time.Time
}
