// Package diag renders inference errors as structured diagnostic
// reports, following the teacher's Report/ReportError pattern.
package diag

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sunholo/semcheck/internal/ast"
)

// Report is the canonical structured diagnostic. Field order and tags
// mirror the teacher's report shape so JSON output sorts the same way.
type Report struct {
	Schema  string              `json:"schema"`
	Code    string              `json:"code"`
	Phase   string              `json:"phase"`
	Message string              `json:"message"`
	Span    *ast.SourceLocation `json:"span,omitempty"`
	Data    map[string]any      `json:"data,omitempty"`
	Fix     *Fix                `json:"fix,omitempty"`
}

// Fix is an optional suggested remedy attached to a Report.
type Fix struct {
	Description string `json:"description"`
	Replacement string `json:"replacement,omitempty"`
}

const schema = "semcheck.error/v1"

// ReportError wraps a Report as an error so it survives errors.As
// unwrapping through ordinary Go error handling.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// Wrap wraps r as an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders r, compact or indented, with deterministic field
// order (encoding/json emits struct fields in declaration order).
func (r *Report) ToJSON(compact bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newReport(code string, loc ast.SourceLocation, message string, data map[string]any) *Report {
	span := loc
	return &Report{
		Schema:  schema,
		Code:    code,
		Phase:   "semantic",
		Message: message,
		Span:    &span,
		Data:    data,
	}
}

// NewGeneric builds a Report for an error with no structured ErrorKind,
// mirroring the teacher's fallback constructor for opaque runtime errors.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  schema,
		Code:    "SEM000",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
