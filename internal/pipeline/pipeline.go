// Package pipeline runs the scrape: fetch the list document, parse it,
// look up star counts, sort, and persist the snapshot.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/singlecellhub/awesome-stars/internal/config"
	"github.com/singlecellhub/awesome-stars/internal/github"
	"github.com/singlecellhub/awesome-stars/internal/listparse"
	"github.com/singlecellhub/awesome-stars/internal/models"
	"github.com/singlecellhub/awesome-stars/internal/snapshot"
	"github.com/singlecellhub/awesome-stars/internal/source"
	"github.com/singlecellhub/awesome-stars/internal/store"
)

// StarFetcher looks up the star count for one repository.
type StarFetcher interface {
	Stargazers(ctx context.Context, owner, repo string) (int, error)
}

type Options struct {
	SkipStars bool
	Output    string
}

// Run executes the full pipeline. A source document fetch failure is
// fatal; every per-entry star lookup failure is absorbed with a warning
// and the entry kept at zero stars.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger, opts Options) error {
	logger.Info("fetching list document", "url", cfg.SourceURL)
	text, err := source.Fetch(ctx, cfg.SourceURL)
	if err != nil {
		return fmt.Errorf("fetching list document: %w", err)
	}

	entries := listparse.Parse(text)
	logger.Info("parsed entries", "count", len(entries))

	if opts.SkipStars {
		logger.Info("skipping star lookups (--skip-stars)")
	} else {
		gh := github.NewClient(ctx, cfg.GitHubToken)
		Enrich(ctx, logger, gh, entries, cfg.FetchDelay)
	}

	SortByStars(entries)

	out := opts.Output
	if out == "" {
		out = cfg.OutputFile
	}
	if err := snapshot.Write(out, entries); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	logger.Info("snapshot written", "path", out, "entries", len(entries))

	if cfg.SurrealURL != "" {
		if err := storeEntries(ctx, cfg, logger, entries); err != nil {
			return err
		}
	}
	return nil
}

// Enrich fills in the Stars field of each entry, one lookup at a time with
// a fixed delay between consecutive calls. Failures never abort the batch:
// the entry keeps stars=0 and the loop moves on.
func Enrich(ctx context.Context, logger *log.Logger, f StarFetcher, entries []models.Entry, delay time.Duration) {
	for i := range entries {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		if (i+1)%10 == 0 || i+1 == len(entries) {
			logger.Info("star lookups", "done", i+1, "total", len(entries))
		}

		stars, err := f.Stargazers(ctx, entries[i].Owner, entries[i].Repo)
		if err != nil {
			switch {
			case github.IsNotFound(err):
				logger.Warn("repository not found", "repo", entries[i].FullName())
			case github.IsRateLimited(err):
				logger.Warn("rate limited or forbidden", "repo", entries[i].FullName())
			default:
				logger.Warn("star lookup failed", "repo", entries[i].FullName(), "err", err)
			}
			entries[i].Stars = 0
			continue
		}
		entries[i].Stars = stars
	}
}

// SortByStars orders entries by star count descending. The sort is stable:
// entries with equal counts keep their list order.
func SortByStars(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Stars > entries[j].Stars
	})
}

func storeEntries(ctx context.Context, cfg *config.Config, logger *log.Logger, entries []models.Entry) error {
	logger.Info("storing entries in SurrealDB", "url", cfg.SurrealURL)
	db, err := store.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(ctx) }()

	if err := db.InitSchema(ctx); err != nil {
		return err
	}
	for i, e := range entries {
		if err := db.UpsertEntry(ctx, e); err != nil {
			return err
		}
		if (i+1)%50 == 0 || i+1 == len(entries) {
			logger.Info("upserted entries", "done", i+1, "total", len(entries))
		}
	}
	return nil
}
