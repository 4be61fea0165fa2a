package probe

import (
	"bytes"
	"mime"
	"net/http"
	"sort"
	"strings"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"
)

// Detector names the technologies visible in a response.
type Detector interface {
	Detect(header http.Header, body []byte) []string
}

// WappalyzerDetector detects technologies with the Wappalyzer fingerprints.
type WappalyzerDetector struct {
	client *wappalyzer.Wappalyze
}

// NewWappalyzerDetector loads the embedded fingerprint database.
func NewWappalyzerDetector() (*WappalyzerDetector, error) {
	client, err := wappalyzer.New()
	if err != nil {
		return nil, err
	}
	return &WappalyzerDetector{client: client}, nil
}

// Detect returns the detected technologies in sorted order.
// Names carry a version suffix when Wappalyzer finds one (e.g. "PHP:8.1").
func (d *WappalyzerDetector) Detect(header http.Header, body []byte) []string {
	found := d.client.Fingerprint(header, body)
	techs := make([]string, 0, len(found))
	for name := range found {
		techs = append(techs, name)
	}
	sort.Strings(techs)
	return techs
}

// extractTitle returns the <title> text of an HTML body.
func extractTitle(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if contentType != "" {
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err == nil && mediaType != "text/html" && mediaType != "application/xhtml+xml" {
			return ""
		}
		body = decodeCharset(params["charset"], body)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.Join(strings.Fields(n.FirstChild.Data), " ")
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)

	return title
}

// decodeCharset converts body from a declared charset to UTF-8.
// Unknown charsets and decoding errors leave body untouched.
func decodeCharset(charset string, body []byte) []byte {
	if charset == "" || strings.EqualFold(charset, "utf-8") {
		return body
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return body
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
