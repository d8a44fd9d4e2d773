// Package domain contains the core domain models for Pipfile manifests:
// versions, specifiers, markers, requirements, and lockfiles.
package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// PrePhase identifies a pre-release phase.
type PrePhase int

const (
	// PhaseAlpha is an alpha pre-release (aN).
	PhaseAlpha PrePhase = iota
	// PhaseBeta is a beta pre-release (bN).
	PhaseBeta
	// PhaseRC is a release candidate (rcN).
	PhaseRC
)

// Version is a parsed package version following the Python versioning scheme:
// [N!]N(.N)*[{a|b|rc}N][.postN][.devN].
type Version struct {
	// Epoch is the version epoch (the N! prefix). Almost always 0.
	Epoch int

	// Release holds the dotted release segments, e.g. [3, 2, 2] for "3.2.2".
	Release []int

	// Pre is the pre-release phase, valid only when HasPre is true.
	Pre     PrePhase
	PreNum  int
	HasPre  bool

	// Post is the post-release number, -1 when absent.
	Post int

	// Dev is the development release number, -1 when absent.
	Dev int

	original string
}

// versionPattern accepts the canonical version forms plus the common spelling
// variants (alpha/beta/c/preview, post/rev/r, separator dots, dashes and
// underscores).
var versionPattern = regexp.MustCompile(`^(?:(\d+)!)?` + // epoch
	`(\d+(?:\.\d+)*)` + // release segments
	`(?:[._-]?(a|b|c|rc|alpha|beta|pre|preview)[._-]?(\d*))?` + // pre
	`(?:[._-]?(?:(post|rev|r)[._-]?(\d*)|-(\d+)))?` + // post
	`(?:[._-]?dev[._-]?(\d*))?$`) // dev

// ParseVersion parses a version token. It returns ErrInvalidVersion when the
// token does not follow the versioning scheme.
func ParseVersion(s string) (Version, error) {
	original := strings.TrimSpace(s)
	normalized := strings.ToLower(strings.TrimPrefix(original, "v"))

	m := versionPattern.FindStringSubmatch(normalized)
	if m == nil {
		return Version{}, zerr.With(ErrInvalidVersion, "version", original)
	}

	v := Version{Post: -1, Dev: -1, original: original}

	if m[1] != "" {
		v.Epoch, _ = strconv.Atoi(m[1])
	}

	for _, seg := range strings.Split(m[2], ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return Version{}, zerr.With(ErrInvalidVersion, "version", original)
		}
		v.Release = append(v.Release, n)
	}

	if m[3] != "" {
		v.HasPre = true
		switch m[3] {
		case "a", "alpha":
			v.Pre = PhaseAlpha
		case "b", "beta":
			v.Pre = PhaseBeta
		default: // c, rc, pre, preview
			v.Pre = PhaseRC
		}
		if m[4] != "" {
			v.PreNum, _ = strconv.Atoi(m[4])
		}
	}

	if m[5] != "" {
		v.Post = 0
		if m[6] != "" {
			v.Post, _ = strconv.Atoi(m[6])
		}
	} else if m[7] != "" {
		// The "1.0-1" shorthand for a post release.
		v.Post, _ = strconv.Atoi(m[7])
	}

	if strings.Contains(normalized, "dev") {
		v.Dev = 0
		if m[8] != "" {
			v.Dev, _ = strconv.Atoi(m[8])
		}
	}

	return v, nil
}

// MustParseVersion is ParseVersion for known-good literals. It panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as originally written.
func (v Version) String() string {
	return v.original
}

// IsPrerelease reports whether the version is a pre-release or dev release.
func (v Version) IsPrerelease() bool {
	return v.HasPre || v.Dev >= 0
}

// Compare returns -1, 0 or +1 ordering v against o.
// Release segments are compared after padding the shorter side with zeros,
// so "1.0" and "1.0.0" are equal. Within one release the ordering is
// devN < aN < bN < rcN < final < postN.
func (v Version) Compare(o Version) int {
	if v.Epoch != o.Epoch {
		return cmpInt(v.Epoch, o.Epoch)
	}

	if c := cmpRelease(v.Release, o.Release); c != 0 {
		return c
	}

	if c := cmpInt(v.preKey(), o.preKey()); c != 0 {
		return c
	}
	if v.HasPre && o.HasPre {
		if c := cmpInt(v.PreNum, o.PreNum); c != 0 {
			return c
		}
	}

	if c := cmpInt(v.Post, o.Post); c != 0 {
		return c
	}

	return cmpInt(v.devKey(), o.devKey())
}

// preKey collapses the pre-release phase into an ordering key.
// A dev-only release sorts below every pre-release of the same version.
func (v Version) preKey() int {
	if v.HasPre {
		return int(v.Pre)
	}
	if v.Dev >= 0 && v.Post < 0 {
		return -1
	}
	return int(PhaseRC) + 1
}

func (v Version) devKey() int {
	if v.Dev < 0 {
		return 1 << 30
	}
	return v.Dev
}

// releasePrefixMatch reports whether v's release segments start with the
// given prefix, padding v with zeros when the prefix is longer.
func (v Version) releasePrefixMatch(prefix []int) bool {
	for i, p := range prefix {
		seg := 0
		if i < len(v.Release) {
			seg = v.Release[i]
		}
		if seg != p {
			return false
		}
	}
	return true
}

func cmpRelease(a, b []int) int {
	n := max(len(a), len(b))
	for i := range n {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return cmpInt(av, bv)
		}
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
