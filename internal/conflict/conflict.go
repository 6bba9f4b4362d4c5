// Package conflict decides what happens when a row from a later dataset maps
// onto an identifier that is already taken.
package conflict

import (
	"fmt"
	"strconv"
	"strings"
)

// Policy is the run-wide rule for identifier collisions.
type Policy string

const (
	Suffix    Policy = "suffix"    // rename to base_ds{n}[_{c}] and keep both
	Skip      Policy = "skip"      // drop the later row
	Overwrite Policy = "overwrite" // the later row replaces the stored one
	Merge     Policy = "merge"     // average the later row into the stored one
)

// Policies lists every accepted policy.
var Policies = []Policy{Suffix, Skip, Overwrite, Merge}

// ParsePolicy accepts a policy name in any case.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Policies {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown conflict policy %q (supported: suffix, skip, overwrite, merge)", s)
}

// Action is the outcome of resolving one row.
type Action string

const (
	Added       Action = "added"
	Skipped     Action = "skipped"
	Overwritten Action = "overwritten"
	Merged      Action = "merged"
)

// Lookup reports whether an identifier is already in the result set.
type Lookup interface {
	Has(id string) bool
}

// Resolve returns the identifier a row should be stored under and what to do
// with it. datasetIndex is the 1-based position of the row's dataset.
func Resolve(base string, taken Lookup, datasetIndex int, p Policy) (string, Action) {
	if !taken.Has(base) {
		return base, Added
	}

	switch p {
	case Skip:
		return base, Skipped
	case Overwrite:
		return base, Overwritten
	case Merge:
		return base, Merged
	case Suffix:
		prefix := base + "_ds" + strconv.Itoa(datasetIndex)
		id := prefix
		for n := 2; taken.Has(id); n++ {
			id = prefix + "_" + strconv.Itoa(n)
		}
		return id, Added
	}
	return base, Added
}
