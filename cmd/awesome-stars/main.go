package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/singlecellhub/awesome-stars/internal/config"
	"github.com/singlecellhub/awesome-stars/internal/llm"
	"github.com/singlecellhub/awesome-stars/internal/models"
	"github.com/singlecellhub/awesome-stars/internal/pipeline"
	"github.com/singlecellhub/awesome-stars/internal/snapshot"
	"github.com/singlecellhub/awesome-stars/internal/store"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "awesome-stars",
		Short: "Scrape awesome-single-cell into a star-ranked JSON snapshot",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug-level logging")

	root.AddCommand(fetchCmd(&verbose), topCmd(), statsCmd(), digestCmd(&verbose))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

func fetchCmd(verbose *bool) *cobra.Command {
	var skipStars bool
	var output string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the list, look up star counts, write the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return pipeline.Run(context.Background(), cfg, newLogger(*verbose), pipeline.Options{
				SkipStars: skipStars,
				Output:    output,
			})
		},
	}
	cmd.Flags().BoolVar(&skipStars, "skip-stars", false, "Parse and write only (no GitHub API calls)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot path (default from OUTPUT_FILE)")
	return cmd
}

func topCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the most-starred entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()

			var entries []models.Entry
			updated := ""
			if cfg.SurrealURL != "" {
				db, err := store.NewClient(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close(ctx) }()

				entries, err = db.GetTopEntries(ctx, n)
				if err != nil {
					return err
				}
			} else {
				snap, err := snapshot.Read(cfg.OutputFile)
				if err != nil {
					return err
				}
				entries = clampTop(snap.Repos, n)
				updated = snap.Updated
			}

			if updated != "" {
				fmt.Printf("Top %d by stars (updated %s):\n", len(entries), updated)
			} else {
				fmt.Printf("Top %d by stars:\n", len(entries))
			}
			for i, e := range entries {
				fmt.Printf("%3d. %-30s ★ %-7d %s\n", i+1, e.Name, e.Stars, e.Category)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 10, "Number of entries")
	return cmd
}

// clampTop returns the first n entries, treating a negative n as zero.
func clampTop(entries []models.Entry, n int) []models.Entry {
	if n < 0 {
		n = 0
	}
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts and category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()

			var cats []store.CategoryCount
			total := 0
			if cfg.SurrealURL != "" {
				db, err := store.NewClient(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close(ctx) }()

				cats, err = db.GetCategoryBreakdown(ctx)
				if err != nil {
					return err
				}
				for _, c := range cats {
					total += c.Count
				}
				fmt.Printf("Entries: %d\n", total)
			} else {
				snap, err := snapshot.Read(cfg.OutputFile)
				if err != nil {
					return err
				}
				cats = store.Breakdown(snap.Repos)
				fmt.Printf("Entries: %d\n", len(snap.Repos))
				fmt.Printf("Updated: %s\n", snap.Updated)
			}

			if len(cats) > 0 {
				fmt.Println("\nCategory breakdown:")
				for _, c := range cats {
					fmt.Printf("  %-40s %d\n", c.Category, c.Count)
				}
			}
			return nil
		},
	}
}

func digestCmd(verbose *bool) *cobra.Command {
	var nCats int

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "AI-written digest of the top categories in the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()
			logger := newLogger(*verbose)

			snap, err := snapshot.Read(cfg.OutputFile)
			if err != nil {
				return err
			}

			cats := topCategories(snap.Repos, nCats)
			if len(cats) == 0 {
				fmt.Println("Snapshot is empty")
				return nil
			}

			client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
			digests := make([]string, len(cats))

			g, gCtx := errgroup.WithContext(ctx)
			g.SetLimit(4)
			for i, cat := range cats {
				g.Go(func() error {
					text, err := client.DigestCategory(gCtx, cat.name, cat.entries)
					if err != nil {
						logger.Warn("digest failed", "category", cat.name, "err", err)
						return nil
					}
					digests[i] = text
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, cat := range cats {
				if digests[i] == "" {
					continue
				}
				fmt.Printf("## %s (%d entries)\n\n%s\n\n", cat.name, len(cat.entries), digests[i])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&nCats, "categories", 5, "Number of categories to digest")
	return cmd
}

type category struct {
	name    string
	entries []models.Entry
	stars   int
}

// topCategories groups entries by category and returns the n categories
// with the highest total star count. Entries keep their snapshot order,
// which is stars-descending.
func topCategories(entries []models.Entry, n int) []category {
	byName := map[string]*category{}
	var order []string
	for _, e := range entries {
		c, ok := byName[e.Category]
		if !ok {
			c = &category{name: e.Category}
			byName[e.Category] = c
			order = append(order, e.Category)
		}
		c.entries = append(c.entries, e)
		c.stars += e.Stars
	}

	cats := make([]category, 0, len(order))
	for _, name := range order {
		cats = append(cats, *byName[name])
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].stars > cats[j].stars })
	if n < len(cats) {
		cats = cats[:n]
	}
	return cats
}
