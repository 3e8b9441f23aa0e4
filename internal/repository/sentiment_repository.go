package repository

import (
	"database/sql"
	"time"

	"github.com/GoldFish88/pollmph/internal/model"
)

type SentimentRepository struct {
	db *sql.DB
}

func NewSentimentRepository(db *sql.DB) *SentimentRepository {
	return &SentimentRepository{db: db}
}

// Save inserts one day's scores. Returns false without error when a record
// already exists for the proposition and date.
func (r *SentimentRepository) Save(s *model.Sentiment) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO sentiment(proposition_id, date_generated, consensus_value, attention_value,
			movement_analysis, rationale_consensus, rationale_attention, data_quality,
			model_used, prompt_version)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (proposition_id, date_generated) DO NOTHING
		RETURNING id
	`, s.PropositionID, s.DateGenerated, s.ConsensusValue, s.AttentionValue,
		s.MovementAnalysis, s.RationaleConsensus, s.RationaleAttention, s.DataQuality,
		s.ModelUsed, s.PromptVersion).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	s.ID = id
	return true, nil
}

func (r *SentimentRepository) GetSeries(propositionID string) ([]model.Sentiment, error) {
	rows, err := r.db.Query(`
		SELECT id, proposition_id, date_generated, consensus_value, attention_value,
			movement_analysis, rationale_consensus, rationale_attention, data_quality,
			model_used, prompt_version, created_at
		FROM sentiment
		WHERE proposition_id = $1
		ORDER BY date_generated ASC
	`, propositionID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSentiments(rows)
}

func (r *SentimentRepository) GetAllSeries() ([]model.Sentiment, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.proposition_id, s.date_generated, s.consensus_value, s.attention_value,
			s.movement_analysis, s.rationale_consensus, s.rationale_attention, s.data_quality,
			s.model_used, s.prompt_version, s.created_at
		FROM sentiment s
		JOIN proposition p ON p.proposition_id = s.proposition_id
		WHERE p.is_archived = FALSE
		ORDER BY s.proposition_id ASC, s.date_generated ASC
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSentiments(rows)
}

func scanSentiments(rows *sql.Rows) ([]model.Sentiment, error) {
	var sentiments []model.Sentiment
	for rows.Next() {
		var s model.Sentiment
		err := rows.Scan(&s.ID, &s.PropositionID, &s.DateGenerated, &s.ConsensusValue, &s.AttentionValue,
			&s.MovementAnalysis, &s.RationaleConsensus, &s.RationaleAttention, &s.DataQuality,
			&s.ModelUsed, &s.PromptVersion, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		sentiments = append(sentiments, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sentiments, nil
}

// GetPreviousDayMetrics returns the scores recorded the day before the target
// date, or the default anchors when no record exists.
func (r *SentimentRepository) GetPreviousDayMetrics(propositionID string, targetDate time.Time) (float64, float64, error) {
	yesterday := targetDate.AddDate(0, 0, -1)

	var consensus, attention float64
	err := r.db.QueryRow(`
		SELECT consensus_value, attention_value
		FROM sentiment
		WHERE proposition_id = $1 AND date_generated = $2
	`, propositionID, yesterday).Scan(&consensus, &attention)

	if err == sql.ErrNoRows {
		return model.DefaultConsensus, model.DefaultAttention, nil
	}

	if err != nil {
		return 0, 0, err
	}

	return consensus, attention, nil
}

func (r *SentimentRepository) Exists(propositionID string, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM sentiment WHERE proposition_id = $1 AND date_generated = $2
		)
	`, propositionID, date).Scan(&exists)
	return exists, err
}

func (r *SentimentRepository) GetSeriesTotal(propositionID string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM sentiment WHERE proposition_id = $1
	`, propositionID).Scan(&total)
	return total, err
}

func (r *SentimentRepository) SaveError(propositionID string, date time.Time, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO scoring_error(proposition_id, date_generated, error_message, error_type)
		VALUES($1, $2, $3, $4)
	`, propositionID, date, errMsg, errType)
	return err
}

func (r *SentimentRepository) GetErrorCount(propositionID string, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM scoring_error
		WHERE proposition_id = $1 AND date_generated = $2
	`, propositionID, date).Scan(&count)
	return count, err
}
