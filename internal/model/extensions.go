package model

import "strings"

// Extensions is an ordered list of extension suffixes such as ".php".
type Extensions []string

// SplitExtensions splits a comma-separated list, trimming whitespace and
// dropping empty tokens. The tokens are not otherwise validated.
func SplitExtensions(s string) Extensions {
	parts := strings.Split(s, ",")
	out := make(Extensions, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Truncate returns at most n extensions. A negative n yields an empty list.
func (e Extensions) Truncate(n int) Extensions {
	if n <= 0 {
		return Extensions{}
	}
	if len(e) <= n {
		return e
	}
	return e[:n]
}

// Join returns the list in ffuf's -e format.
func (e Extensions) Join() string {
	return strings.Join(e, ",")
}

// MergeExtensions returns user followed by suggested, skipping duplicates.
func MergeExtensions(user, suggested Extensions) Extensions {
	seen := make(map[string]bool, len(user)+len(suggested))
	out := make(Extensions, 0, len(user)+len(suggested))
	for _, list := range []Extensions{user, suggested} {
		for _, ext := range list {
			if seen[ext] {
				continue
			}
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}
