// Package store persists snapshot entries to SurrealDB. The store is an
// optional sink: the JSON snapshot on disk is always written, and SurrealDB
// is only used when SURREAL_URL is configured.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	sdk "github.com/surrealdb/surrealdb.go"

	"github.com/singlecellhub/awesome-stars/internal/config"
	"github.com/singlecellhub/awesome-stars/internal/models"
)

type Client struct {
	db *sdk.DB
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	db, err := sdk.FromEndpointURLString(ctx, cfg.SurrealURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, sdk.Auth{
		Namespace: cfg.SurrealNS,
		Database:  cfg.SurrealDB,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("signing in: %w", err)
	}

	if err := db.Use(ctx, cfg.SurrealNS, cfg.SurrealDB); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("selecting ns/db: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

func (c *Client) InitSchema(ctx context.Context) error {
	schema := `
DEFINE TABLE IF NOT EXISTS entry SCHEMAFULL;

DEFINE FIELD IF NOT EXISTS name        ON TABLE entry TYPE string;
DEFINE FIELD IF NOT EXISTS url         ON TABLE entry TYPE string;
DEFINE FIELD IF NOT EXISTS owner       ON TABLE entry TYPE string;
DEFINE FIELD IF NOT EXISTS repo        ON TABLE entry TYPE string;
DEFINE FIELD IF NOT EXISTS category    ON TABLE entry TYPE string;
DEFINE FIELD IF NOT EXISTS description ON TABLE entry TYPE string;
DEFINE FIELD IF NOT EXISTS stars       ON TABLE entry TYPE int;
DEFINE FIELD IF NOT EXISTS fetched_at  ON TABLE entry TYPE datetime;

DEFINE INDEX IF NOT EXISTS idx_full_name ON TABLE entry FIELDS owner, repo UNIQUE;
`
	_, err := sdk.Query[any](ctx, c.db, schema, nil)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Client) UpsertEntry(ctx context.Context, e models.Entry) error {
	id := strings.ReplaceAll(e.FullName(), "/", "__")
	data := map[string]any{
		"name":        e.Name,
		"url":         e.URL,
		"owner":       e.Owner,
		"repo":        e.Repo,
		"category":    e.Category,
		"description": e.Description,
		"stars":       e.Stars,
		"fetched_at":  time.Now().UTC(),
	}

	_, err := sdk.Query[any](ctx, c.db,
		`UPSERT type::thing("entry", $id) MERGE $data`,
		map[string]any{
			"id":   id,
			"data": data,
		})
	if err != nil {
		return fmt.Errorf("upserting %s: %w", e.FullName(), err)
	}
	return nil
}

func (c *Client) GetTopEntries(ctx context.Context, n int) ([]models.Entry, error) {
	if n < 0 {
		n = 0
	}
	query := fmt.Sprintf(`SELECT * FROM entry ORDER BY stars DESC LIMIT %d`, n)
	results, err := sdk.Query[[]models.Entry](ctx, c.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("querying top entries: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

type CategoryCount struct {
	Category string
	Count    int
}

// Breakdown tallies entries per category, most populous first. It is shared
// by the DB-backed breakdown below and the snapshot-backed stats command.
func Breakdown(entries []models.Entry) []CategoryCount {
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Category]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func (c *Client) GetCategoryBreakdown(ctx context.Context) ([]CategoryCount, error) {
	results, err := sdk.Query[[]models.Entry](ctx, c.db,
		`SELECT category FROM entry`, nil)
	if err != nil {
		return nil, fmt.Errorf("getting categories: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return Breakdown((*results)[0].Result), nil
}
