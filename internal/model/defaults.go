package model

// Shared defaults used by the CLI and the report renderer.
const (
	DefaultTopN        = 10
	DefaultHourBuckets = 24
)

// AbsentField is the Combined Log Format sentinel for a missing value.
const AbsentField = "-"
