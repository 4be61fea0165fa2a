package advisor

import "github.com/nao1215/ffufai/internal/model"

// ParseExtensions reads a model reply as a comma-separated list.
// Whitespace is trimmed, empty tokens are dropped and the result is cut to
// limit entries. Tokens are not otherwise validated, so a reply such as
// "php" is passed through as-is.
func ParseExtensions(reply string, limit int) model.Extensions {
	return model.SplitExtensions(reply).Truncate(limit)
}
