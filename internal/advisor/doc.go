// Package advisor turns a probe fingerprint into a list of file extensions
// by asking a language model.
package advisor
