package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Operator is a version comparison operator.
type Operator string

const (
	OpEqual      Operator = "=="
	OpNotEqual   Operator = "!="
	OpLessEq     Operator = "<="
	OpGreaterEq  Operator = ">="
	OpLess       Operator = "<"
	OpGreater    Operator = ">"
	OpCompatible Operator = "~="
	OpArbitrary  Operator = "==="
)

// operators is ordered longest-first so that prefix matching picks "===" over
// "==" and "==" over "=".
var operators = []Operator{OpArbitrary, OpEqual, OpNotEqual, OpLessEq, OpGreaterEq, OpCompatible, OpLess, OpGreater}

// Specifier is a single version constraint clause, e.g. "==3.2.2" or ">=1.0".
type Specifier struct {
	Op      Operator
	Version Version

	// Prefix marks a wildcard clause like "==1.1.*", matching every version
	// in the 1.1 series.
	Prefix bool

	// Literal holds the raw version token, used by the "===" operator which
	// compares text rather than parsed versions.
	Literal string
}

// SpecifierSet is the conjunction of zero or more specifier clauses.
// The zero value (and the "*" constraint) matches every version.
type SpecifierSet struct {
	clauses []Specifier
}

// ParseSpecifierSet parses a constraint string: "*", or one or more
// comma-separated clauses each beginning with a comparison operator.
func ParseSpecifierSet(s string) (SpecifierSet, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return SpecifierSet{}, nil
	}

	var set SpecifierSet
	for _, clause := range strings.Split(s, ",") {
		spec, err := parseSpecifier(strings.TrimSpace(clause))
		if err != nil {
			return SpecifierSet{}, err
		}
		set.clauses = append(set.clauses, spec)
	}
	return set, nil
}

func parseSpecifier(clause string) (Specifier, error) {
	for _, op := range operators {
		if !strings.HasPrefix(clause, string(op)) {
			continue
		}

		token := strings.TrimSpace(strings.TrimPrefix(clause, string(op)))
		if token == "" {
			return Specifier{}, zerr.With(ErrInvalidSpecifier, "clause", clause)
		}

		spec := Specifier{Op: op, Literal: token}

		if op == OpArbitrary {
			return spec, nil
		}

		if strings.HasSuffix(token, ".*") {
			if op != OpEqual && op != OpNotEqual {
				return Specifier{}, zerr.With(ErrInvalidSpecifier, "clause", clause)
			}
			spec.Prefix = true
			token = strings.TrimSuffix(token, ".*")
		}

		v, err := ParseVersion(token)
		if err != nil {
			return Specifier{}, zerr.Wrap(err, "invalid version in specifier")
		}

		if op == OpCompatible && len(v.Release) < 2 {
			// "~=1" has no meaning: the compatible-release operator needs a
			// series to hold fixed.
			return Specifier{}, zerr.With(ErrInvalidSpecifier, "clause", clause)
		}

		spec.Version = v
		return spec, nil
	}

	return Specifier{}, zerr.With(ErrInvalidSpecifier, "clause", clause)
}

// IsAny reports whether the set matches every version (the "*" constraint).
func (s SpecifierSet) IsAny() bool {
	return len(s.clauses) == 0
}

// Clauses returns the constraint clauses in declaration order.
func (s SpecifierSet) Clauses() []Specifier {
	return s.clauses
}

// Exact returns the pinned version and true when the set is a single strict
// equality clause. Pins are never widened during resolution.
func (s SpecifierSet) Exact() (Version, bool) {
	if len(s.clauses) == 1 && s.clauses[0].Op == OpEqual && !s.clauses[0].Prefix {
		return s.clauses[0].Version, true
	}
	return Version{}, false
}

// Match reports whether the version satisfies every clause in the set.
func (s SpecifierSet) Match(v Version) bool {
	for _, c := range s.clauses {
		if !c.match(v) {
			return false
		}
	}
	return true
}

func (c Specifier) match(v Version) bool {
	switch c.Op {
	case OpArbitrary:
		return strings.EqualFold(strings.TrimSpace(v.String()), c.Literal)
	case OpEqual:
		if c.Prefix {
			return v.Epoch == c.Version.Epoch && v.releasePrefixMatch(c.Version.Release)
		}
		return v.Compare(c.Version) == 0
	case OpNotEqual:
		if c.Prefix {
			return v.Epoch != c.Version.Epoch || !v.releasePrefixMatch(c.Version.Release)
		}
		return v.Compare(c.Version) != 0
	case OpLessEq:
		return v.Compare(c.Version) <= 0
	case OpGreaterEq:
		return v.Compare(c.Version) >= 0
	case OpLess:
		return v.Compare(c.Version) < 0
	case OpGreater:
		return v.Compare(c.Version) > 0
	case OpCompatible:
		if v.Compare(c.Version) < 0 {
			return false
		}
		series := c.Version.Release[:len(c.Version.Release)-1]
		return v.Epoch == c.Version.Epoch && v.releasePrefixMatch(series)
	default:
		return false
	}
}

// HasPrereleaseClause reports whether any clause names a pre-release
// explicitly. Only then are pre-releases eligible candidates.
func (s SpecifierSet) HasPrereleaseClause() bool {
	for _, c := range s.clauses {
		if c.Op != OpArbitrary && c.Version.IsPrerelease() {
			return true
		}
	}
	return false
}

// And returns the conjunction of two sets.
func (s SpecifierSet) And(o SpecifierSet) SpecifierSet {
	merged := make([]Specifier, 0, len(s.clauses)+len(o.clauses))
	merged = append(merged, s.clauses...)
	merged = append(merged, o.clauses...)
	return SpecifierSet{clauses: merged}
}

// Unsatisfiable reports whether the set provably admits no version, such as
// two different exact pins or inverted bounds. A false result is not a proof
// of satisfiability: some conflicts only surface against a real release list.
func (s SpecifierSet) Unsatisfiable() bool {
	// An exact pin must satisfy every other clause.
	for i, c := range s.clauses {
		if c.Op == OpEqual && !c.Prefix {
			for j, other := range s.clauses {
				if j != i && other.Op != OpArbitrary && !other.match(c.Version) {
					return true
				}
			}
		}
	}

	// Inverted bounds: the strongest lower bound above the weakest upper bound.
	type bound struct {
		v         Version
		inclusive bool
		set       bool
	}
	var lower, upper bound

	for _, c := range s.clauses {
		switch c.Op {
		case OpGreaterEq, OpCompatible:
			if !lower.set || c.Version.Compare(lower.v) > 0 {
				lower = bound{v: c.Version, inclusive: true, set: true}
			}
		case OpGreater:
			if !lower.set || c.Version.Compare(lower.v) >= 0 {
				lower = bound{v: c.Version, inclusive: false, set: true}
			}
		case OpLessEq:
			if !upper.set || c.Version.Compare(upper.v) < 0 {
				upper = bound{v: c.Version, inclusive: true, set: true}
			}
		case OpLess:
			if !upper.set || c.Version.Compare(upper.v) <= 0 {
				upper = bound{v: c.Version, inclusive: false, set: true}
			}
		}
	}

	if lower.set && upper.set {
		switch c := lower.v.Compare(upper.v); {
		case c > 0:
			return true
		case c == 0 && (!lower.inclusive || !upper.inclusive):
			return true
		}
	}

	return false
}

// String renders the set back to its constraint form: "*" for the empty set,
// otherwise the comma-joined clauses.
func (s SpecifierSet) String() string {
	if s.IsAny() {
		return "*"
	}
	parts := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		parts[i] = string(c.Op) + c.Literal
	}
	return strings.Join(parts, ",")
}
