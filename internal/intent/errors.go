package intent

import "fmt"

// DependencyTimeoutError means a delegated call exceeded its time budget.
type DependencyTimeoutError struct {
	Tool Tool
}

func (e *DependencyTimeoutError) Error() string {
	return fmt.Sprintf("%s collaborator timed out", e.Tool)
}

// DependencyFailureError wraps an error returned by a delegated call.
type DependencyFailureError struct {
	Tool Tool
	Err  error
}

func (e *DependencyFailureError) Error() string {
	return fmt.Sprintf("%s collaborator failed: %v", e.Tool, e.Err)
}

func (e *DependencyFailureError) Unwrap() error {
	return e.Err
}
