package fuzz

import (
	"strings"

	"github.com/nao1215/ffufai/internal/model"
)

// BuildArgs returns the arguments handed to ffuf.
//
// passthrough is kept verbatim and in order, except for any -e flag the
// user gave: its extensions are merged in front of suggested and the result
// is appended as a single "-e" flag. No -e flag is added when the merged
// list is empty.
func BuildArgs(passthrough []string, userExt, suggested model.Extensions) []string {
	args := removeExtensionFlags(passthrough)

	merged := model.MergeExtensions(userExt, suggested)
	if len(merged) > 0 {
		args = append(args, "-e", merged.Join())
	}
	return args
}

// removeExtensionFlags drops "-e v", "--e v", "-e=v" and "--e=v" tokens.
func removeExtensionFlags(args []string) []string {
	out := make([]string, 0, len(args)+2)
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-e" || args[i] == "--e":
			i++ // skip the value as well
		case strings.HasPrefix(args[i], "-e=") || strings.HasPrefix(args[i], "--e="):
		default:
			out = append(out, args[i])
		}
	}
	return out
}
