package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Marker is a parsed platform predicate such as
//
//	sys_platform == 'win32'
//	os_name == 'posix' and platform_machine != 'i686'
//
// "and" binds tighter than "or". Parenthesised groups are not supported;
// none of the manifests this tool consumes use them.
type Marker struct {
	raw string
	// groups is the or-of-ands normal form: the marker holds when every term
	// of at least one group holds.
	groups [][]markerTerm
}

type markerTerm struct {
	variable string
	op       Operator // OpEqual or OpNotEqual
	literal  string
}

// ParseMarker parses a marker expression. The empty string yields a nil
// marker, meaning "always".
func ParseMarker(s string) (*Marker, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	tokens, err := tokenizeMarker(s)
	if err != nil {
		return nil, err
	}

	m := &Marker{raw: s}
	group := []markerTerm{}

	for i := 0; i < len(tokens); {
		if len(tokens)-i < 3 {
			return nil, zerr.With(ErrInvalidMarker, "marker", s)
		}

		term, err := parseTerm(tokens[i], tokens[i+1], tokens[i+2])
		if err != nil {
			return nil, zerr.Wrap(err, "invalid marker term")
		}
		group = append(group, term)
		i += 3

		if i == len(tokens) {
			break
		}
		switch tokens[i] {
		case "and":
			i++
		case "or":
			m.groups = append(m.groups, group)
			group = []markerTerm{}
			i++
		default:
			return nil, zerr.With(ErrInvalidMarker, "marker", s)
		}
		if i == len(tokens) {
			// A trailing connector has nothing to bind.
			return nil, zerr.With(ErrInvalidMarker, "marker", s)
		}
	}

	if len(group) == 0 {
		return nil, zerr.With(ErrInvalidMarker, "marker", s)
	}
	m.groups = append(m.groups, group)
	return m, nil
}

func parseTerm(lhs, op, rhs string) (markerTerm, error) {
	term := markerTerm{variable: lhs}

	switch op {
	case "==":
		term.op = OpEqual
	case "!=":
		term.op = OpNotEqual
	default:
		return markerTerm{}, zerr.With(ErrInvalidMarker, "operator", op)
	}

	lit, ok := unquote(rhs)
	if !ok {
		// Literal-on-the-left comparisons are accepted too.
		if lit, ok = unquote(lhs); !ok {
			return markerTerm{}, zerr.With(ErrInvalidMarker, "literal", rhs)
		}
		term.variable = rhs
	}
	term.literal = lit
	return term, nil
}

// Evaluate reports whether the predicate holds in the environment. A nil
// marker always holds.
func (m *Marker) Evaluate(env Environment) bool {
	if m == nil {
		return true
	}

	for _, group := range m.groups {
		holds := true
		for _, term := range group {
			if !term.evaluate(env) {
				holds = false
				break
			}
		}
		if holds {
			return true
		}
	}
	return false
}

func (t markerTerm) evaluate(env Environment) bool {
	value, known := env.lookup(t.variable)
	if !known {
		return false
	}
	if t.op == OpNotEqual {
		return value != t.literal
	}
	return value == t.literal
}

// String returns the marker as originally written, or "" for nil.
func (m *Marker) String() string {
	if m == nil {
		return ""
	}
	return m.raw
}

// tokenizeMarker splits on whitespace outside quoted literals.
func tokenizeMarker(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, zerr.With(ErrInvalidMarker, "marker", s)
	}
	flush()
	return tokens, nil
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1], true
		}
	}
	return "", false
}
