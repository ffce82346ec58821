package models

// Entry is one repository reference parsed from the awesome list.
// Owner and Repo are extracted from the GitHub URL; Stars stays 0 until
// enrichment runs.
type Entry struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
}

func (e Entry) FullName() string {
	return e.Owner + "/" + e.Repo
}

// Snapshot is the on-disk output format: all entries sorted by stars
// descending, plus the time the snapshot was taken.
type Snapshot struct {
	Repos   []Entry `json:"repos"`
	Updated string  `json:"updated"`
}
