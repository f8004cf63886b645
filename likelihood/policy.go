// SPDX-License-Identifier: MIT

package likelihood

import "fmt"

// Policy selects which subsets of a batch are scored.
type Policy int

const (
	// AllSubsets scores every non-empty subset.
	AllSubsets Policy = iota
	// EvenCardinality scores only non-empty subsets of even size.
	EvenCardinality
)

// Policy names accepted by ParsePolicy.
const (
	PolicyAuto = "auto"
	PolicyEven = "even"
	PolicyAll  = "all"
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case AllSubsets:
		return PolicyAll
	case EvenCardinality:
		return PolicyEven
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// PolicyFor returns EvenCardinality for a purely symmetric kernel
// (rankB == 0) and AllSubsets otherwise.
func PolicyFor(rankB int) Policy {
	if rankB == 0 {
		return EvenCardinality
	}
	return AllSubsets
}

// ParsePolicy resolves "auto", "even" or "all"; "auto" defers to PolicyFor.
func ParsePolicy(name string, rankB int) (Policy, error) {
	switch name {
	case PolicyAuto, "":
		return PolicyFor(rankB), nil
	case PolicyEven:
		return EvenCardinality, nil
	case PolicyAll:
		return AllSubsets, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
	}
}

// Scores reports whether a subset of size k contributes under p.
func (p Policy) Scores(k int) bool {
	if k == 0 {
		return false
	}
	if p == EvenCardinality {
		return k%2 == 0
	}
	return true
}
