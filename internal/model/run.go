package model

// Run carries the state of one ffufai run through the pipeline.
type Run struct {
	// Invocation is the parsed user command line.
	Invocation *Invocation

	// Fingerprint is set by the probe step. It is never nil after the
	// probe step has run, even if the probe failed.
	Fingerprint *Fingerprint

	// Extensions holds the suggested extensions after the advise step.
	Extensions Extensions

	// Cached is true when Extensions came from the suggestion cache.
	Cached bool

	// Provider and Model name the backend that produced the suggestion.
	Provider string
	Model    string

	// Command is the argument list handed to ffuf, binary first.
	Command []string

	// ExitCode is the exit status of ffuf.
	ExitCode int

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string
}

// NewRun creates a Run for the given invocation.
func NewRun(inv *Invocation) *Run {
	return &Run{Invocation: inv}
}
