package diag

// Diagnostic is one classified conversion failure.
type Diagnostic struct {
	// Path is the job JSON the failure belongs to, or the output path for
	// write failures.
	Path    string
	Code    Code
	Message string
}

// FromError builds a Diagnostic for path by classifying err.
func FromError(path string, err error) Diagnostic {
	return Diagnostic{Path: path, Code: CodeOf(err), Message: err.Error()}
}
