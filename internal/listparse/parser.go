// Package listparse turns the raw markdown of the awesome-single-cell
// README into repository entries. Parsing is scoped to the "Software
// packages" section: content before it is ignored and the first top-level
// heading after it terminates the scan.
package listparse

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/singlecellhub/awesome-stars/internal/models"
)

// SectionHeading marks the start of the parsed section.
const SectionHeading = "## Software packages"

var (
	// linkRe matches the leading [text](url) markdown link on a bullet line.
	linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// ownerRepoRe extracts the first two path segments after github.com.
	ownerRepoRe = regexp.MustCompile(`github\.com/([^/]+)/([^/\s)]+)`)

	// repoSanitizeRe strips anything outside [A-Za-z0-9_.-] from a repo segment.
	repoSanitizeRe = regexp.MustCompile(`[^\w.-]`)

	// descRe matches the free text trailing a link, skipping an optional
	// secondary bracketed tag such as a language marker: " - [R] - does X".
	descRe = regexp.MustCompile(`^\s*-\s*(?:\[[^\]]+\]\s*-\s*)?(.*)$`)
)

// Entries scans text line by line and yields one entry per well-formed
// bullet link with a GitHub URL. Malformed lines are skipped silently;
// scanning stops at the first top-level heading after the target section.
func Entries(text string) iter.Seq[models.Entry] {
	return func(yield func(models.Entry) bool) {
		inSection := false
		category := ""

		for line := range strings.Lines(text) {
			line = strings.TrimRight(line, "\r\n")
			trimmed := strings.TrimSpace(line)

			if trimmed == SectionHeading {
				inSection = true
				continue
			}

			// A later top-level heading ends the section for good.
			if inSection && strings.HasPrefix(line, "##") && trimmed != SectionHeading {
				if !strings.HasPrefix(line, "###") {
					return
				}
			}

			if strings.HasPrefix(line, "###") {
				category = strings.TrimSpace(strings.ReplaceAll(line, "###", ""))
				continue
			}

			if !inSection || category == "" || !strings.HasPrefix(trimmed, "- [") {
				continue
			}

			entry, ok := parseBullet(line, category)
			if !ok {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Parse collects all entries from text into a slice.
func Parse(text string) []models.Entry {
	return slices.Collect(Entries(text))
}

func parseBullet(line, category string) (models.Entry, bool) {
	m := linkRe.FindStringSubmatchIndex(line)
	if m == nil {
		return models.Entry{}, false
	}
	name := line[m[2]:m[3]]
	url := line[m[4]:m[5]]

	if !IsGitHubURL(url) {
		return models.Entry{}, false
	}
	owner, repo, ok := SplitOwnerRepo(url)
	if !ok {
		return models.Entry{}, false
	}

	description := ""
	if dm := descRe.FindStringSubmatch(line[m[1]:]); dm != nil {
		description = StripEmoji(dm[1])
	}

	return models.Entry{
		Name:        name,
		URL:         url,
		Owner:       owner,
		Repo:        repo,
		Category:    category,
		Description: description,
	}, true
}

// IsGitHubURL reports whether url points at github.com, with or without a
// scheme or www prefix.
func IsGitHubURL(url string) bool {
	return strings.Contains(url, "://github.com/") ||
		strings.Contains(url, "://www.github.com/") ||
		strings.HasPrefix(url, "github.com/")
}

// SplitOwnerRepo extracts the owner and repository name from a GitHub URL.
// The repo segment is sanitized down to word characters, hyphens and dots.
func SplitOwnerRepo(url string) (owner, repo string, ok bool) {
	m := ownerRepoRe.FindStringSubmatch(url)
	if m == nil {
		return "", "", false
	}
	owner = m[1]
	repo = repoSanitizeRe.ReplaceAllString(m[2], "")
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}
