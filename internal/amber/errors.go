package amber

import "errors"

// Sentinel errors for conversion failures. Each one is terminal for the job
// being converted; callers wrap them with the offending name or path and
// match with errors.Is.
var (
	// ErrUnsupportedType reports a uniform setter or SSBO field type with no
	// Amber data-type equivalent.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMissingRequiredStage reports a job without the stage its kind
	// requires: no fragment assembly for a graphics job, no compute assembly
	// for a compute job.
	ErrMissingRequiredStage = errors.New("missing required stage")

	// ErrAmbiguousJob reports a job whose related files match more than one
	// compute stage, so its kind cannot be decided.
	ErrAmbiguousJob = errors.New("ambiguous shader job")

	// ErrMalformedComputeBuffer reports compute metadata that cannot become
	// an SSBO declaration: the $compute key is absent, the buffer has no
	// fields or no data, field types disagree, or num_groups is empty.
	ErrMalformedComputeBuffer = errors.New("malformed compute buffer")

	// ErrInconsistentTestPair reports a reference job whose kind does not
	// match the variant, or a pairing the pipeline cannot express.
	ErrInconsistentTestPair = errors.New("inconsistent test pair")

	// ErrUnknownJobKind reports a job value outside the closed set of
	// graphics and compute jobs.
	ErrUnknownJobKind = errors.New("unknown shader job kind")

	// ErrOutputWrite wraps filesystem failures while writing the finished
	// script.
	ErrOutputWrite = errors.New("cannot write output script")
)
