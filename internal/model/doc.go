// Package model defines the data structures shared by the ffufai packages.
//
// This package contains the following main types:
//   - Invocation: the user's command line, split into pass-through ffuf
//     arguments and the values ffufai reads from them
//   - HeaderSet and Fingerprint: what the probe learned about the target
//   - Extensions: an ordered extension list as handed to ffuf's -e flag
//   - Suggestion: a stored record of one model suggestion
//   - Run: the state of a single ffufai run as it moves through the pipeline
//
// Only Suggestion is persisted.
package model
