// Package snapshot reads and writes the JSON output file.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/singlecellhub/awesome-stars/internal/models"
)

// TimeFormat is the layout of the snapshot's updated field.
const TimeFormat = "2006-01-02 15:04:05 UTC"

// Write persists entries to path as {"repos": [...], "updated": "..."}.
// Entries are written in the order given; sorting is the caller's job.
func Write(path string, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	snap := models.Snapshot{
		Repos:   entries,
		Updated: time.Now().UTC().Format(TimeFormat),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously written snapshot from path.
func Read(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &snap, nil
}
