package model

import (
	"errors"
	"net/url"
	"strings"
)

// Placeholder is the token ffuf replaces with wordlist entries.
const Placeholder = "FUZZ"

// ErrMissingURL is returned when the pass-through arguments carry no -u flag
// or the flag has no value.
var ErrMissingURL = errors.New("-u URL argument is required")

// Invocation holds the ffuf arguments supplied by the user.
//
// Args is forwarded to ffuf verbatim. The other fields are read from Args
// and never removed from it, with the exception of the -e value, which the
// fuzz invoker replaces with the merged extension list.
type Invocation struct {
	// Args is the ordered list of pass-through tokens.
	Args []string

	// URL is the value of the -u flag.
	URL string

	// UserExtensions holds the extensions given with -e, if any.
	UserExtensions Extensions

	// Headers are the "Name: value" pairs given with -H.
	// They are replayed on the probe request so authenticated targets
	// answer the probe the same way they answer ffuf.
	Headers map[string]string

	// Cookie is the value of the -b flag.
	Cookie string

	// Proxy is the value of the -x flag (http:// or socks5:// URL).
	Proxy string
}

// ParseInvocation reads the pass-through ffuf arguments.
// ffuf uses the standard library flag package, so "-u value", "-u=value",
// "--u value" and "--u=value" are all accepted, and a repeated single-value
// flag such as -u or -e keeps its last value. -H may repeat.
func ParseInvocation(args []string) (*Invocation, error) {
	inv := &Invocation{
		Args:    append([]string(nil), args...),
		Headers: make(map[string]string),
	}

	for i := 0; i < len(args); i++ {
		name, value, inline := splitFlag(args[i])
		if name == "" {
			continue
		}
		if !inline {
			if !takesValue(name) {
				continue
			}
			if i+1 >= len(args) {
				continue
			}
			value = args[i+1]
			i++
		}

		switch name {
		case "u":
			inv.URL = value
		case "e":
			inv.UserExtensions = SplitExtensions(value)
		case "H":
			key, val, ok := strings.Cut(value, ":")
			if ok {
				inv.Headers[strings.TrimSpace(key)] = strings.TrimSpace(val)
			}
		case "b":
			inv.Cookie = value
		case "x":
			inv.Proxy = value
		}
	}

	if inv.URL == "" {
		return nil, ErrMissingURL
	}
	return inv, nil
}

// takesValue reports whether ffufai needs the value of the named ffuf flag.
func takesValue(name string) bool {
	switch name {
	case "u", "e", "H", "b", "x":
		return true
	default:
		return false
	}
}

// splitFlag returns the flag name of a "-name", "--name" or "-name=value"
// token. name is empty when the token is not a flag.
func splitFlag(arg string) (name, value string, inline bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", "", false
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if trimmed == "" {
		return "", "", false
	}
	if n, v, ok := strings.Cut(trimmed, "="); ok {
		return n, v, true
	}
	return trimmed, "", false
}

// HasPlaceholderAtEnd reports whether the placeholder appears in the last
// segment of the URL path. Extension fuzzing only makes sense there.
func HasPlaceholderAtEnd(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	segments := strings.Split(u.Path, "/")
	return strings.Contains(segments[len(segments)-1], Placeholder)
}

// ProbeURL strips the placeholder so the probe request targets the
// directory ffuf is going to fuzz.
func ProbeURL(rawURL string) string {
	return strings.ReplaceAll(rawURL, Placeholder, "")
}
