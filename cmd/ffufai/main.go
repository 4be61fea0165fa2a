// Package main provides the entry point for the ffufai CLI.
//
// ffufai wraps ffuf. It probes the target URL, asks a language model which
// file extensions are worth fuzzing, and runs ffuf with the original
// arguments plus "-e <extensions>".
//
// Usage:
//
//	ffufai [--ffuf-path PATH] [--max-extensions N] -u https://target/FUZZ -w wordlist.txt [ffuf flags]
//
// See --help for all available options.
package main

// main is the entry point for ffufai.
func main() {
	Execute()
}
