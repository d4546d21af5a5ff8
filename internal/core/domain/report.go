package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Outcome is the terminal state of one plan operation.
type Outcome string

const (
	// OutcomeInstalled indicates a package was cloned at its pinned commit.
	OutcomeInstalled Outcome = "installed"
	// OutcomeUpdated indicates an existing package was moved to a new commit.
	OutcomeUpdated Outcome = "updated"
	// OutcomeRemoved indicates a package directory was deleted.
	OutcomeRemoved Outcome = "removed"
	// OutcomeUnchanged indicates a noop operation.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeFailed indicates the operation failed; Err carries the cause.
	OutcomeFailed Outcome = "failed"
)

// InstallResult is the outcome of exactly one plan operation.
type InstallResult struct {
	Name    string
	Kind    OpKind
	Outcome Outcome
	Err     error
}

// InstallReport aggregates one result per plan operation, complete even under
// partial failure.
type InstallReport struct {
	Results []InstallResult
}

// OK reports whether every operation succeeded.
func (r InstallReport) OK() bool {
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// Failed returns the results of failed operations, sorted by package name.
func (r InstallReport) Failed() []InstallResult {
	var failed []InstallResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			failed = append(failed, res)
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].Name < failed[j].Name })
	return failed
}

// Summary renders a per-package outcome listing sorted by package name.
func (r InstallReport) Summary() string {
	results := make([]InstallResult, len(r.Results))
	copy(results, r.Results)
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	var b strings.Builder
	for _, res := range results {
		if res.Outcome == OutcomeFailed {
			fmt.Fprintf(&b, "%-10s %s: %v\n", res.Outcome, res.Name, res.Err)
			continue
		}
		fmt.Fprintf(&b, "%-10s %s\n", res.Outcome, res.Name)
	}
	return b.String()
}
