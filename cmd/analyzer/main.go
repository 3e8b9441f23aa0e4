package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/GoldFish88/pollmph/db"
	"github.com/GoldFish88/pollmph/internal/model"
	"github.com/GoldFish88/pollmph/internal/repository"
	"github.com/GoldFish88/pollmph/pkg/llm"
	"github.com/joho/godotenv"
)

// Worker that pops scoring jobs off the queue, asks the LLM for the day's
// consensus and attention scores, and stores one sentiment row per job.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	ctx := context.Background()

	queue, err := db.ConnectQueue(ctx)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer queue.Close()

	pool, err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer pool.Close()

	propositionRepo := repository.NewPropositionRepository(pool)
	sentimentRepo := repository.NewSentimentRepository(pool)

	client, err := newScoringClient()
	if err != nil {
		log.Fatalf("error configuring LLM client: %v", err)
	}

	for {
		payload, err := queue.Pop(ctx, db.ScoreQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		var job model.ScoreJob
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			slog.Error("invalid job in queue", "payload", payload, "error", err)
			continue
		}

		targetDate, err := time.Parse("2006-01-02", job.Date)
		if err != nil {
			slog.Error("invalid date in job", "date", job.Date, "error", err)
			continue
		}

		errorCount, err := sentimentRepo.GetErrorCount(job.PropositionID, targetDate)
		if err != nil {
			slog.Error("error getting error count", "error", err, "proposition_id", job.PropositionID)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("job exceeded max retries, moving to dead letter queue",
				"proposition_id", job.PropositionID, "date", job.Date, "error_count", errorCount)
			queue.Push(ctx, db.DeadLetterKey, payload)
			continue
		}

		exists, err := sentimentRepo.Exists(job.PropositionID, targetDate)
		if err != nil {
			slog.Error("error checking existing record", "error", err, "proposition_id", job.PropositionID)
			continue
		}

		if exists {
			slog.Info("record already exists, skipping", "proposition_id", job.PropositionID, "date", job.Date)
			continue
		}

		proposition, err := propositionRepo.GetByID(job.PropositionID)
		if err != nil {
			slog.Error("error getting proposition from DB", "error", err, "proposition_id", job.PropositionID)
			continue
		}

		if proposition == nil {
			slog.Warn("proposition not found in DB", "proposition_id", job.PropositionID)
			continue
		}

		yesterdayConsensus, yesterdayAttention, err := sentimentRepo.GetPreviousDayMetrics(job.PropositionID, targetDate)
		if err != nil {
			slog.Error("error getting previous day metrics", "error", err, "proposition_id", job.PropositionID)
			continue
		}

		input := llm.ScoreInput{
			Proposition:        proposition.PropositionText,
			SearchQueries:      proposition.SearchQueries,
			YesterdayConsensus: yesterdayConsensus,
			YesterdayAttention: yesterdayAttention,
			TargetDate:         targetDate,
		}

		result, err := client.Score(input)
		if err != nil {
			slog.Error("error scoring proposition", "error", err, "proposition_id", job.PropositionID)

			sentimentRepo.SaveError(job.PropositionID, targetDate, err.Error(), "llm_error")

			queue.Push(ctx, db.ScoreQueueKey, payload)

			time.Sleep(5 * time.Second)
			continue
		}

		if err := result.Validate(); err != nil {
			slog.Error("LLM returned out-of-range scores", "error", err, "proposition_id", job.PropositionID)

			sentimentRepo.SaveError(job.PropositionID, targetDate, err.Error(), "validation_error")

			queue.Push(ctx, db.ScoreQueueKey, payload)
			continue
		}

		sentiment := model.Sentiment{
			PropositionID:      job.PropositionID,
			DateGenerated:      targetDate,
			ConsensusValue:     result.ConsensusValue,
			AttentionValue:     result.AttentionValue,
			MovementAnalysis:   result.MovementAnalysis,
			RationaleConsensus: result.RationaleConsensus,
			RationaleAttention: result.RationaleAttention,
			DataQuality:        result.DataQuality,
			ModelUsed:          result.ModelUsed,
			PromptVersion:      result.PromptVersion,
		}

		saved, err := sentimentRepo.Save(&sentiment)
		if err != nil {
			slog.Error("error saving sentiment", "error", err, "proposition_id", job.PropositionID)
			continue
		}

		if !saved {
			slog.Info("duplicate sentiment skipped", "proposition_id", job.PropositionID, "date", job.Date)
			continue
		}

		slog.Info("proposition scored successfully",
			"proposition_id", job.PropositionID, "date", job.Date,
			"consensus", result.ConsensusValue, "attention", result.AttentionValue)
	}
}

func newScoringClient() (llm.Client, error) {
	if key := os.Getenv("XAI_API_KEY"); key != "" {
		return llm.NewGrokClient(key), nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return llm.NewAnthropicClient(key), nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return llm.NewOpenAIClient(key), nil
	}
	return nil, errNoAPIKey
}

var errNoAPIKey = errors.New("no LLM API key configured (XAI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY)")
