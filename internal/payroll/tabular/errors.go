package tabular

import (
	"fmt"
	"strings"
)

// SchemaError aborts a load. Row is the 1-based data row (header excluded),
// zero when the error concerns the file as a whole.
type SchemaError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.Row > 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %s", e.Column)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	return b.String()
}

// NotReadyError is returned while the dataset is still loading. Retryable.
type NotReadyError struct{}

func (NotReadyError) Error() string {
	return "payroll dataset is not loaded yet"
}
