package handler

type TrendPointResponse struct {
	Date               string  `json:"date"`
	ConsensusValue     float64 `json:"consensus_value"`
	AttentionValue     float64 `json:"attention_value"`
	SmoothedConsensus  float64 `json:"smoothed_consensus"`
	SmoothedAttention  float64 `json:"smoothed_attention"`
	Majority           bool    `json:"majority"`
	MovementAnalysis   string  `json:"movement_analysis"`
	RationaleConsensus string  `json:"rationale_consensus"`
	RationaleAttention string  `json:"rationale_attention"`
	DataQuality        float64 `json:"data_quality"`
}

type TrendResponse struct {
	PropositionID string               `json:"proposition_id"`
	Window        int                  `json:"window"`
	Points        []TrendPointResponse `json:"points"`
	Total         int                  `json:"total"`
}

type TrendsResponse struct {
	Window int             `json:"window"`
	Trends []TrendResponse `json:"trends"`
}

type SentimentResponse struct {
	Date               string  `json:"date"`
	ConsensusValue     float64 `json:"consensus_value"`
	AttentionValue     float64 `json:"attention_value"`
	MovementAnalysis   string  `json:"movement_analysis"`
	RationaleConsensus string  `json:"rationale_consensus"`
	RationaleAttention string  `json:"rationale_attention"`
	DataQuality        float64 `json:"data_quality"`
	ModelUsed          string  `json:"model_used"`
	PromptVersion      string  `json:"prompt_version"`
}

type SentimentSeriesResponse struct {
	PropositionID string              `json:"proposition_id"`
	Sentiments    []SentimentResponse `json:"sentiments"`
	Total         int                 `json:"total"`
}

type PropositionResponse struct {
	PropositionID   string   `json:"proposition_id"`
	PropositionText string   `json:"proposition_text"`
	SearchQueries   []string `json:"search_queries"`
	IsArchived      bool     `json:"is_archived"`
	CreatedAt       string   `json:"created_at"`
}

type CreatePropositionRequest struct {
	PropositionID   string   `json:"proposition_id" binding:"required"`
	PropositionText string   `json:"proposition_text" binding:"required"`
	SearchQueries   []string `json:"search_queries"`
}
