package domain

import (
	"fmt"
	"strings"
)

// NetworkError reports a non-success HTTP status from an upstream endpoint.
type NetworkError struct {
	Resource   string
	StatusCode int
	Body       string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Resource, e.StatusCode, e.Body)
}

// ParseError reports a body that is not well-formed JSON.
type ParseError struct {
	Resource string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed JSON: %v", e.Resource, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Issue is a single schema violation at a field path such as "[3].current_price".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every schema violation found in one payload.
// Partial is set when the entries that passed are returned alongside it.
type ValidationError struct {
	Resource string
	Issues   []Issue
	Partial  bool
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("%s: %d validation issue(s): %s", e.Resource, len(e.Issues), strings.Join(parts, "; "))
}
