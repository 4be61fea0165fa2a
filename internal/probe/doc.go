// Package probe fetches the target once before fuzzing and reports what the
// response says about the technology behind it.
//
// A probe never fails the run. Connection errors, timeouts and non-2xx
// responses all produce an empty fingerprint, and the advisor works with
// the URL alone.
package probe
