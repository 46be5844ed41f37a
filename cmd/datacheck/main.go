package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marswrapped/wrapped-api/internal/logic"
	"github.com/marswrapped/wrapped-api/internal/models"
)

// Fetches both aggregate files from the static host and reports any user
// whose stored averages disagree with the sums they were derived from.
// Exits non-zero when a file cannot be loaded or any issue is found.
func main() {
	baseURL := flag.String("base-url", os.Getenv("DATA_BASE_URL"), "static host serving batch_user_aggregate_{2,4}p.json")
	timeout := flag.Duration("timeout", 30*time.Second, "per-file fetch timeout")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	if *baseURL == "" {
		sugar.Fatal("-base-url or DATA_BASE_URL is required")
	}

	loader := logic.NewHTTPLoader(*baseURL, *timeout, logger)
	counts := []models.PlayerCount{models.TwoPlayer, models.FourPlayer}
	results := make([][]logic.Issue, len(counts))

	g, ctx := errgroup.WithContext(context.Background())
	for i, pc := range counts {
		g.Go(func() error {
			ds, err := loader.Load(ctx, pc)
			if err != nil {
				return err
			}
			results[i] = logic.CheckDataset(ds)
			sugar.Infow("Checked dataset", "playerCount", int(pc), "users", len(ds.Users), "issues", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		sugar.Fatalw("Failed to load dataset", "error", err)
	}

	total := 0
	for i, issues := range results {
		for _, issue := range issues {
			sugar.Warnw("Inconsistent record", "playerCount", int(counts[i]), "user", issue.User, "field", issue.Field, "detail", issue.Message)
		}
		total += len(issues)
	}
	if total > 0 {
		sugar.Errorw("Datasets failed consistency check", "issues", total)
		os.Exit(1)
	}
	sugar.Info("Datasets consistent")
}
