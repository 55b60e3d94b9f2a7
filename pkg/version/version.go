package version

import (
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// tagPattern matches one to three dot-separated components, each a
// non-negative integer or a single "*" wildcard.
var tagPattern = regexp.MustCompile(`^(\d+|\*)(\.(\d+|\*)){0,2}$`)

// Predicate reports whether a registry key should be treated as a release version.
type Predicate func(s string) bool

// IsValidVersionTag is the loose predicate: "1", "1.2", "1.2.3" and "1.2.*" pass,
// pre-release tags, build metadata and dist-tags like "modified" do not.
func IsValidVersionTag(s string) bool {
	return tagPattern.MatchString(s)
}

// IsStrictSemver accepts only full MAJOR.MINOR.PATCH versions without
// pre-release or build metadata.
func IsStrictSemver(s string) bool {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return false
	}
	return v.Prerelease() == "" && v.Metadata() == ""
}

// Compare orders two version strings by their numeric major, minor and patch
// components. It returns -1 if a is older than b, 1 if a is newer and 0 if the
// first three components are equal. Missing components and "*" count as 0.
func Compare(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		if c := compareComponent(component(pa, i), component(pb, i)); c != 0 {
			return c
		}
	}
	return 0
}

func component(parts []string, i int) string {
	if i >= len(parts) || parts[i] == "*" || parts[i] == "" {
		return "0"
	}
	return parts[i]
}

// compareComponent compares two digit strings numerically without
// converting them, so arbitrarily long components cannot overflow.
func compareComponent(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func trimZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// SortDescending sorts versions newest first. Versions that compare equal keep
// their relative order.
func SortDescending(versions []string) {
	slices.SortStableFunc(versions, func(a, b string) int {
		return Compare(b, a)
	})
}

// SelectLatest filters candidates with valid and returns the newest survivor.
// A nil predicate means IsValidVersionTag. The second return value is false
// when no candidate passes the filter.
func SelectLatest(candidates []string, valid Predicate) (string, bool) {
	if valid == nil {
		valid = IsValidVersionTag
	}
	var versions []string
	for _, c := range candidates {
		if valid(c) {
			versions = append(versions, c)
		}
	}
	if len(versions) == 0 {
		return "", false
	}
	SortDescending(versions)
	return versions[0], true
}
