package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// Issue is a validation failure flattened for transport.
type Issue struct {
	Kind    string `json:"kind,omitempty"`
	Factor  string `json:"factor,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of the validate-only entry point.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Check validates def and reports the outcome as a Result.
func Check(def design.Definition) Result {
	if err := Definition(def); err != nil {
		return Failed(err)
	}
	return Result{Valid: true}
}

// Failed converts an error from any pipeline stage into a single-issue Result.
func Failed(err error) Result {
	return Result{Valid: false, Issues: []Issue{IssueFromError(err)}}
}

// IssueFromError extracts kind, factor and line metadata from typed errors.
func IssueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}
	issue := Issue{
		Kind:    string(design.KindOf(err)),
		Message: strings.TrimSpace(err.Error()),
	}

	var (
		validationErr *design.ValidationError
		parseErr      *design.ParseError
	)
	switch {
	case errors.As(err, &validationErr):
		issue.Factor = validationErr.Factor
		issue.Message = validationErr.Message
	case errors.As(err, &parseErr):
		issue.Line = parseErr.Line
	}
	return issue
}
