package survey

import "fmt"

// StatusError indicates the data source answered with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("fetch %s: unexpected status %s: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// UnreachableError indicates the data source could not be reached at all.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	if e == nil {
		return "unreachable"
	}
	return fmt.Sprintf("data source unreachable at %s: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// ColumnError indicates a column the report needs is absent from the table.
type ColumnError struct{ Column string }

func (e *ColumnError) Error() string { return fmt.Sprintf("missing column %q", e.Column) }
