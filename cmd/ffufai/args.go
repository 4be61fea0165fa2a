package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Flags owned by ffufai. Everything else is passed to ffuf untouched,
// so these names must never collide with ffuf's own flags.
const (
	flagFfufPath      = "ffuf-path"
	flagMaxExtensions = "max-extensions"
	flagConfig        = "ffufai-config"
	flagVerbose       = "ffufai-verbose"
	flagNoCache       = "ffufai-no-cache"
	flagDryRun        = "ffufai-dry-run"
)

var errMissingFlagValue = errors.New("flag needs an argument")

// toolFlags holds the ffufai flags found on the command line.
// Pointer fields are nil when the flag was not given.
type toolFlags struct {
	ffufPath      *string
	maxExtensions *int
	configPath    string
	verbose       bool
	noCache       bool
	dryRun        bool
}

// splitArgs separates ffufai's flags from the ffuf pass-through arguments.
// Both "--flag value" and "--flag=value" are accepted. The pass-through
// arguments keep their order.
func splitArgs(args []string) (*toolFlags, []string, error) {
	tf := &toolFlags{}
	passthrough := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			passthrough = append(passthrough, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch name {
		case flagFfufPath, flagMaxExtensions, flagConfig:
			if !hasValue {
				if i+1 >= len(args) {
					return nil, nil, fmt.Errorf("%w: --%s", errMissingFlagValue, name)
				}
				i++
				value = args[i]
			}
			if err := tf.setValue(name, value); err != nil {
				return nil, nil, err
			}
		case flagVerbose, flagNoCache, flagDryRun:
			b := true
			if hasValue {
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					return nil, nil, fmt.Errorf("invalid value %q for --%s: %w", value, name, err)
				}
				b = parsed
			}
			tf.setBool(name, b)
		default:
			passthrough = append(passthrough, arg)
		}
	}

	return tf, passthrough, nil
}

func (tf *toolFlags) setValue(name, value string) error {
	switch name {
	case flagFfufPath:
		tf.ffufPath = &value
	case flagMaxExtensions:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for --%s: must be an integer", value, name)
		}
		if n < 0 {
			return fmt.Errorf("invalid value %q for --%s: must be zero or positive", value, name)
		}
		tf.maxExtensions = &n
	case flagConfig:
		tf.configPath = value
	}
	return nil
}

func (tf *toolFlags) setBool(name string, value bool) {
	switch name {
	case flagVerbose:
		tf.verbose = value
	case flagNoCache:
		tf.noCache = value
	case flagDryRun:
		tf.dryRun = value
	}
}

// wantsHelp reports whether the pass-through arguments ask for help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" || arg == "-help" {
			return true
		}
	}
	return false
}

// wantsVersion reports whether the pass-through arguments ask for the version.
func wantsVersion(args []string) bool {
	for _, arg := range args {
		if arg == "--version" {
			return true
		}
	}
	return false
}

// shellJoin renders args for display, quoting the ones a shell would split.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"\\$`&|;<>(){}*?!#~") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
			continue
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
