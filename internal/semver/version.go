package semver

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	modsemver "golang.org/x/mod/semver"
)

// SemVersion is the extension version, always exactly MAJOR.MINOR.PATCH.
type SemVersion struct {
	Major int
	Minor int
	Patch int
}

// Impact selects which component of a SemVersion is incremented.
type Impact string

const (
	ImpactMajor Impact = "major"
	ImpactMinor Impact = "minor"
	ImpactPatch Impact = "patch"
)

// DefaultImpact is used when no impact is given on the command line.
const DefaultImpact = ImpactPatch

// Impacts lists the accepted impact values in display order.
var Impacts = []Impact{ImpactMajor, ImpactMinor, ImpactPatch}

// JoinImpacts returns the accepted impact values joined by sep.
func JoinImpacts(sep string) string {
	names := make([]string, len(Impacts))
	for i, impact := range Impacts {
		names[i] = string(impact)
	}
	return strings.Join(names, sep)
}

var (
	// versionRegex accepts three dot-separated runs of digits and nothing else.
	versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

	// ErrInvalidVersion is returned when a version string is not MAJOR.MINOR.PATCH.
	ErrInvalidVersion = errors.New("invalid version format")

	// ErrInvalidImpact is returned for impact values other than major, minor or patch.
	ErrInvalidImpact = errors.New("invalid upgrade impact")
)

// maxVersionLength bounds the input handed to the regex.
const maxVersionLength = 128

// String returns the MAJOR.MINOR.PATCH form.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	return sb.String()
}

// ParseVersion parses a MAJOR.MINOR.PATCH string.
//
// Surrounding whitespace is ignored. A "v" prefix, pre-release or build
// metadata, and any number of components other than three are rejected
// with ErrInvalidVersion.
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if len(matches) != 4 {
		return SemVersion{}, fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH", ErrInvalidVersion, s)
	}

	parts := [3]int{}
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return SemVersion{}, fmt.Errorf("%w: invalid %s version: %s", ErrInvalidVersion, name, err.Error())
		}
		parts[i] = n
	}

	return SemVersion{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// ParseImpact converts a command-line value into an Impact.
// The empty string yields DefaultImpact.
func ParseImpact(s string) (Impact, error) {
	if s == "" {
		return DefaultImpact, nil
	}
	if !slices.Contains(Impacts, Impact(s)) {
		return "", fmt.Errorf("%w: %q (use %s)", ErrInvalidImpact, s, JoinImpacts(", "))
	}
	return Impact(s), nil
}

// Bump returns the next version for the given impact:
//   - major: 1.2.3 -> 2.0.0
//   - minor: 1.2.3 -> 1.3.0
//   - patch: 1.2.3 -> 1.2.4
func Bump(v SemVersion, impact Impact) (SemVersion, error) {
	switch impact {
	case ImpactMajor:
		return SemVersion{Major: v.Major + 1}, nil
	case ImpactMinor:
		return SemVersion{Major: v.Major, Minor: v.Minor + 1}, nil
	case ImpactPatch:
		return SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	default:
		return SemVersion{}, fmt.Errorf("%w: %q", ErrInvalidImpact, impact)
	}
}

// BumpString parses current, bumps it and returns the new version string.
func BumpString(current string, impact Impact) (string, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	next, err := Bump(v, impact)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

// Compare returns -1, 0 or +1 comparing v with other.
func (v SemVersion) Compare(other SemVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareInt(v.Patch, other.Patch)
}

// CompareFormatter compares two formatter versions.
// The formatter is versioned independently and may use a "v" prefix or a
// pre-release suffix, so golang.org/x/mod/semver rules apply here.
// ok is false when either side is not a valid semantic version.
func CompareFormatter(a, b string) (cmp int, ok bool) {
	ca, cb := canonical(a), canonical(b)
	if !modsemver.IsValid(ca) || !modsemver.IsValid(cb) {
		return 0, false
	}
	return modsemver.Compare(ca, cb), true
}

func canonical(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return s
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
