package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singlecellhub/awesome-stars/internal/models"
)

func TestBreakdown(t *testing.T) {
	entries := []models.Entry{
		{Name: "a", Category: "RNA-seq"},
		{Name: "b", Category: "Quality control"},
		{Name: "c", Category: "RNA-seq"},
		{Name: "d", Category: "RNA-seq"},
		{Name: "e", Category: "Visualization"},
		{Name: "f", Category: "Quality control"},
	}

	cats := Breakdown(entries)
	require.Len(t, cats, 3)
	assert.Equal(t, CategoryCount{Category: "RNA-seq", Count: 3}, cats[0])
	assert.Equal(t, 2, cats[1].Count)
	assert.Equal(t, 1, cats[2].Count)
}

func TestBreakdown_Empty(t *testing.T) {
	assert.Empty(t, Breakdown(nil))
}
