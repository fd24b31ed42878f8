package aggregate

import (
	"fmt"
	"strings"
)

// NoMatchError reports an employee/period predicate that selected nothing.
type NoMatchError struct {
	EmployeeIDs []string
	Period      string
}

func (e *NoMatchError) Error() string {
	var parts []string
	if len(e.EmployeeIDs) > 0 {
		parts = append(parts, "employees="+strings.Join(e.EmployeeIDs, ","))
	}
	if e.Period != "" {
		parts = append(parts, "period="+e.Period)
	}
	if len(parts) == 0 {
		return "no payroll records match"
	}
	return "no payroll records match " + strings.Join(parts, " ")
}

type UnresolvableEntityError struct {
	Ref string
}

func (e *UnresolvableEntityError) Error() string {
	if e.Ref == "" {
		return "question names no known employee"
	}
	return fmt.Sprintf("no employee matches %q", e.Ref)
}

// AmbiguousEntityError carries the ids of every employee the reference
// matched so the caller can ask which one was meant.
type AmbiguousEntityError struct {
	Ref        string
	Candidates []string
}

func (e *AmbiguousEntityError) Error() string {
	return fmt.Sprintf("%q matches %d employees: %s", e.Ref, len(e.Candidates), strings.Join(e.Candidates, ","))
}
