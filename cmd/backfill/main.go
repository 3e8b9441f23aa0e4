package main

import (
	"context"
	"encoding/json"
	"errors"
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

// Enqueues scoring jobs for a past date range of one proposition, so a newly
// added proposition gets chart history. Counts back from yesterday in
// Asia/Manila; the analyzer worker does the actual scoring.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	idFlag := flag.String("id", "", "proposition ID to backfill")
	daysFlag := flag.Int("days", 0, "number of past days to backfill, counting back from yesterday")
	startFlag := flag.String("start", "", "start date (YYYY-MM-DD), overrides --days")
	endFlag := flag.String("end", "", "end date (YYYY-MM-DD), overrides --days")
	flag.Parse()

	if *idFlag == "" {
		log.Fatal("--id is required")
	}

	startDate, endDate, err := resolveRange(*daysFlag, *startFlag, *endFlag)
	if err != nil {
		log.Fatalf("invalid date range: %v", err)
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

	proposition, err := propositionRepo.GetByID(*idFlag)
	if err != nil {
		log.Fatalf("error loading proposition: %v", err)
	}

	if proposition == nil {
		log.Fatalf("proposition %q not found", *idFlag)
	}

	slog.Info("starting backfill",
		"proposition_id", proposition.PropositionID,
		"start", startDate.Format("2006-01-02"),
		"end", endDate.Format("2006-01-02"))

	var queued, skipped, errors int

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		exists, err := sentimentRepo.Exists(proposition.PropositionID, date)
		if err != nil {
			slog.Error("error checking existing record", "error", err, "date", date.Format("2006-01-02"))
			errors++
			continue
		}

		if exists {
			skipped++
			continue
		}

		payload, err := json.Marshal(model.ScoreJob{
			PropositionID: proposition.PropositionID,
			Date:          date.Format("2006-01-02"),
		})
		if err != nil {
			slog.Error("error encoding job", "error", err, "date", date.Format("2006-01-02"))
			errors++
			continue
		}

		err = queue.Push(ctx, db.ScoreQueueKey, string(payload))
		if err != nil {
			slog.Error("error pushing to Redis queue", "error", err, "date", date.Format("2006-01-02"))
			errors++
			continue
		}

		queued++
	}

	slog.Info("backfill complete", "queued", queued, "skipped", skipped, "errors", errors)
}

func resolveRange(days int, start, end string) (time.Time, time.Time, error) {
	if start != "" || end != "" {
		startDate, err := time.Parse("2006-01-02", start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		endDate, err := time.Parse("2006-01-02", end)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if startDate.After(endDate) {
			return time.Time{}, time.Time{}, errStartAfterEnd
		}
		return startDate, endDate, nil
	}

	if days < 1 {
		return time.Time{}, time.Time{}, errNoRange
	}

	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	now := time.Now().In(loc)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return yesterday.AddDate(0, 0, -(days - 1)), yesterday, nil
}

var (
	errStartAfterEnd = errors.New("start date must be before or equal to end date")
	errNoRange       = errors.New("either --days or --start/--end must be provided")
)
