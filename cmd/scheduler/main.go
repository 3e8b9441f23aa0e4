package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/GoldFish88/pollmph/db"
	"github.com/GoldFish88/pollmph/internal/model"
	"github.com/GoldFish88/pollmph/internal/repository"
	"github.com/joho/godotenv"
)

// Enqueues one scoring job per active proposition for the target date.
// Invoked daily by cron; a --date flag supports re-runs for a past day.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	dateFlag := flag.String("date", "", "target date (YYYY-MM-DD), defaults to today in Asia/Manila")
	flag.Parse()

	targetDate, err := resolveTargetDate(*dateFlag)
	if err != nil {
		log.Fatalf("invalid --date: %v", err)
	}

	pool, err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	queue, err := db.ConnectQueue(ctx)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer queue.Close()

	propositionRepo := repository.NewPropositionRepository(pool)
	sentimentRepo := repository.NewSentimentRepository(pool)

	propositions, err := propositionRepo.GetActive()
	if err != nil {
		log.Fatalf("error loading propositions: %v", err)
	}

	if len(propositions) == 0 {
		slog.Info("no active propositions, nothing to schedule")
		return
	}

	dateStr := targetDate.Format("2006-01-02")

	var queued, skipped, errors int

	for _, proposition := range propositions {
		exists, err := sentimentRepo.Exists(proposition.PropositionID, targetDate)
		if err != nil {
			slog.Error("error checking existing record", "error", err, "proposition_id", proposition.PropositionID)
			errors++
			continue
		}

		if exists {
			slog.Info("record already exists, skipping", "proposition_id", proposition.PropositionID, "date", dateStr)
			skipped++
			continue
		}

		payload, err := json.Marshal(model.ScoreJob{
			PropositionID: proposition.PropositionID,
			Date:          dateStr,
		})
		if err != nil {
			slog.Error("error encoding job", "error", err, "proposition_id", proposition.PropositionID)
			errors++
			continue
		}

		err = queue.Push(ctx, db.ScoreQueueKey, string(payload))
		if err != nil {
			slog.Error("error pushing to Redis queue", "error", err, "proposition_id", proposition.PropositionID)
			errors++
			continue
		}

		queued++
	}

	slog.Info("scheduling complete", "date", dateStr, "queued", queued, "skipped", skipped, "errors", errors)
}

func resolveTargetDate(dateFlag string) (time.Time, error) {
	if dateFlag != "" {
		return time.Parse("2006-01-02", dateFlag)
	}

	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.Time{}, err
	}

	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}
