package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report is the outcome of validating one input document: every problem
// found, not just the first, split into fatal errors and non-fatal
// warnings.
type Report struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Report) Ok() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks a raw collection document for structural problems. It
// is a pure function over its input: validating the same document twice
// yields identical reports. Turning a failed report into an abort is the
// caller's responsibility.
func Validate(data []byte) Report {
	var report Report
	if IsAbsent(data) {
		report.errorf("collection document is missing")
		return report
	}
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		report.errorf("collection document is malformed: %v", err)
		return report
	}
	if raw.Info == nil {
		report.errorf("collection has no info object")
	} else if raw.Info.Name == "" {
		report.warnf("collection info has no name")
	}
	if raw.Item == nil {
		report.errorf("collection has no item array")
	} else if len(raw.Item) == 0 {
		report.warnf("collection has no items")
	}
	return report
}

// ValidateEnvironment checks a raw environment document. An absent
// document never fails: the environment is optional. A present document
// without a values array is an error; an empty values array is only a
// warning.
func ValidateEnvironment(data []byte) Report {
	var report Report
	if IsAbsent(data) {
		return report
	}
	var raw rawEnvironment
	if err := json.Unmarshal(data, &raw); err != nil {
		report.errorf("environment document is malformed: %v", err)
		return report
	}
	if raw.Values == nil {
		report.errorf("environment has no values array")
		return report
	}
	if len(raw.Values) == 0 {
		report.warnf("environment has no values")
	}
	for i, v := range raw.Values {
		if v.Key == "" {
			report.warnf("environment value %d has no key", i)
		}
	}
	return report
}

// IsAbsent reports whether a document is missing entirely: no bytes or
// the JSON null literal.
func IsAbsent(data []byte) bool {
	t := bytes.TrimSpace(data)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
