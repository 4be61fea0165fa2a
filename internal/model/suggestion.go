package model

import "time"

// Suggestion is one stored extension suggestion.
type Suggestion struct {
	ID         int64      `json:"id"`
	CacheKey   string     `json:"-"`
	URL        string     `json:"url"`
	Provider   string     `json:"provider"`
	Model      string     `json:"model"`
	Extensions Extensions `json:"extensions"`
	Cached     bool       `json:"cached"`
	CreatedAt  time.Time  `json:"createdAt"`
}
