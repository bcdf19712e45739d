// Package budget implements the point-allocation checks shared by every
// archetype's creation steps: triple distributions, exact sums, and
// restricted key sets.
package budget

import (
	"fmt"
	"sort"
)

// Violation codes. These surface to the actor as StepResult error codes,
// so they are stable strings rather than Go error types.
const (
	CodeOutOfBounds          = "out_of_bounds"
	CodeDistributionMismatch = "distribution_mismatch"
	CodeSumMismatch          = "sum_mismatch"
	CodeIneligibleKey        = "ineligible_key"
)

// Violation is a single user-correctable rules failure. Checks collect all
// violations in one pass so the actor sees every problem at once.
type Violation struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (v Violation) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Bound is an inclusive per-item range.
type Bound struct {
	Min int
	Max int
}

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// Triple is a set of three required group totals, kept sorted ascending.
type Triple [3]int

// Sorted returns a copy of the triple sorted ascending.
func (t Triple) Sorted() Triple {
	s := t
	if s[0] > s[1] {
		s[0], s[1] = s[1], s[0]
	}
	if s[1] > s[2] {
		s[1], s[2] = s[2], s[1]
	}
	if s[0] > s[1] {
		s[0], s[1] = s[1], s[0]
	}
	return s
}

// CheckTriple verifies that values, partitioned into three fixed groups,
// produce group totals matching the required triple in some order. base is
// subtracted from each value before summing (attributes start at one free
// dot; the triple counts allocated dots only).
//
// The comparison is order-independent: both the actual group totals and the
// required triple are sorted before the element-wise comparison, so the
// caller may put their highest total in any group.
func CheckTriple(values map[string]int, groups [3][]string, required Triple, bound Bound, base int) []Violation {
	var violations []Violation

	var actual Triple
	for i, group := range groups {
		for _, name := range group {
			v := values[name]
			if !bound.Contains(v) {
				violations = append(violations, Violation{
					Field:   name,
					Code:    CodeOutOfBounds,
					Message: fmt.Sprintf("%s must be between %d and %d, got %d", name, bound.Min, bound.Max, v),
				})
			}
			actual[i] += v - base
		}
	}

	if actual.Sorted() != required.Sorted() {
		a := actual.Sorted()
		r := required.Sorted()
		violations = append(violations, Violation{
			Code: CodeDistributionMismatch,
			Message: fmt.Sprintf("group totals must be %d/%d/%d in any order, got %d/%d/%d",
				r[2], r[1], r[0], a[2], a[1], a[0]),
		})
	}

	return violations
}

// CheckSum verifies that the values sum to exactly the required total, with
// each value inside the per-item bound. Used for ungrouped budgets such as
// discipline dots, arcanoi dots, and virtue dots.
func CheckSum(values map[string]int, required int, bound Bound) []Violation {
	var violations []Violation

	total := 0
	for _, name := range sortedKeys(values) {
		v := values[name]
		if !bound.Contains(v) {
			violations = append(violations, Violation{
				Field:   name,
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("%s must be between %d and %d, got %d", name, bound.Min, bound.Max, v),
			})
		}
		total += v
	}

	if total != required {
		violations = append(violations, Violation{
			Code:    CodeSumMismatch,
			Message: fmt.Sprintf("must spend exactly %d dots, got %d", required, total),
		})
	}

	return violations
}

// CheckCap is CheckSum's bounded-range sibling: the values may sum to at
// most cap. Ghouls, for example, may spend up to two additional discipline
// dots rather than exactly two.
func CheckCap(values map[string]int, cap int, bound Bound) []Violation {
	var violations []Violation

	total := 0
	for _, name := range sortedKeys(values) {
		v := values[name]
		if !bound.Contains(v) {
			violations = append(violations, Violation{
				Field:   name,
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("%s must be between %d and %d, got %d", name, bound.Min, bound.Max, v),
			})
		}
		total += v
	}

	if total > cap {
		violations = append(violations, Violation{
			Code:    CodeSumMismatch,
			Message: fmt.Sprintf("may spend at most %d dots, got %d", cap, total),
		})
	}

	return violations
}

// CheckMembership verifies that every nonzero value is keyed by an allowed
// name. One violation is emitted per disallowed key, in deterministic
// order.
func CheckMembership(values map[string]int, allowed map[string]struct{}) []Violation {
	var violations []Violation

	for _, name := range sortedKeys(values) {
		if values[name] == 0 {
			continue
		}
		if _, ok := allowed[name]; !ok {
			violations = append(violations, Violation{
				Field:   name,
				Code:    CodeIneligibleKey,
				Message: fmt.Sprintf("%s is not available to this character", name),
			})
		}
	}

	return violations
}

func sortedKeys(values map[string]int) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
