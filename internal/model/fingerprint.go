package model

import (
	"net/http"
	"sort"
	"strings"
)

// HeaderSet maps header names to values for a single response.
type HeaderSet map[string]string

// NewHeaderSet flattens an http.Header. Repeated headers are joined with ", ".
func NewHeaderSet(h http.Header) HeaderSet {
	hs := make(HeaderSet, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		hs[name] = strings.Join(values, ", ")
	}
	return hs
}

// Names returns the header names in sorted order.
func (h HeaderSet) Names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fingerprint is everything the probe learned about the target.
// A failed probe yields a Fingerprint with an empty HeaderSet.
type Fingerprint struct {
	// URL is the address that was probed.
	URL string

	// StatusCode is the HTTP status of the probe response, 0 on failure.
	StatusCode int

	// Headers holds the response headers.
	Headers HeaderSet

	// Technologies lists products detected from headers and body, sorted.
	Technologies []string

	// Title is the HTML page title, if any.
	Title string
}

// NewEmptyFingerprint returns the fingerprint used when the probe fails.
func NewEmptyFingerprint(url string) *Fingerprint {
	return &Fingerprint{
		URL:     url,
		Headers: HeaderSet{},
	}
}

// IsEmpty reports whether the probe produced nothing usable.
func (f *Fingerprint) IsEmpty() bool {
	return f == nil || (len(f.Headers) == 0 && len(f.Technologies) == 0 && f.Title == "")
}
