package advisor

import (
	"fmt"
	"strings"

	"github.com/nao1215/ffufai/internal/model"
)

// SystemPrompt is sent as the system instruction on every request.
const SystemPrompt = "You are a helpful assistant that suggests file extensions for web content fuzzing based on a URL and its HTTP response headers."

// BuildPrompt returns the user prompt for url and fp.
// The model is told to answer with a bare comma-separated list so that
// ParseExtensions can read it without any other structure.
func BuildPrompt(url string, fp *model.Fingerprint, limit int) string {
	var sb strings.Builder

	sb.WriteString("Given the following URL and HTTP headers, suggest the most likely file extensions for fuzzing this endpoint.\n")
	sb.WriteString("Respond ONLY with a comma-separated list of extensions, each starting with a dot, for example: .php,.bak,.old\n")
	sb.WriteString("No preamble, no explanation, no code fences.\n")
	fmt.Fprintf(&sb, "Do not suggest more than %d extensions, and only suggest extensions that make sense.\n", limit)
	sb.WriteString("If limited, prefer the extensions that are more interesting.\n")
	sb.WriteString("Look at the URL path for ideas: a path like /presentations/ likely holds .pdf or .pptx files, ")
	sb.WriteString("and under /js/ the .js extension is a good choice while .css is not.\n\n")

	sb.WriteString("Examples:\n")
	sb.WriteString("1. URL: https://example.com/presentations/FUZZ\n")
	sb.WriteString("   Headers:\n   Content-Type: application/pdf\n   Content-Length: 1234567\n")
	sb.WriteString("   Response: .pdf,.ppt,.pptx\n")
	sb.WriteString("2. URL: https://example.com/FUZZ\n")
	sb.WriteString("   Headers:\n   Server: Microsoft-IIS/10.0\n   X-Powered-By: ASP.NET\n")
	sb.WriteString("   Response: .aspx,.asp,.exe,.dll\n\n")

	fmt.Fprintf(&sb, "URL: %s\n", url)
	sb.WriteString("Headers:\n")
	if fp == nil || len(fp.Headers) == 0 {
		sb.WriteString("   (none)\n")
	} else {
		for _, name := range fp.Headers.Names() {
			fmt.Fprintf(&sb, "   %s: %s\n", name, fp.Headers[name])
		}
	}
	if fp != nil && len(fp.Technologies) > 0 {
		fmt.Fprintf(&sb, "Detected technologies: %s\n", strings.Join(fp.Technologies, ", "))
	}
	if fp != nil && fp.Title != "" {
		fmt.Fprintf(&sb, "Page title: %s\n", fp.Title)
	}
	sb.WriteString("\nResponse:")

	return sb.String()
}
