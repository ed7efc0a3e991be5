// Package version parses and orders host-application version strings
// and decides release compatibility against the running host version.
//
// The accepted grammar is:
//
//	v<major>[.<minor>[.<patch>]][-rc<n>][-<qualifier>]
//
// A missing minor or patch component acts as a wildcard: "v1" matches
// every v1.x.y when compared. Release candidates order before the final
// release of the same version. Any trailing qualifier other than rc<n>
// is accepted and ignored.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(
	`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-rc(\d+))?(?:-([0-9A-Za-z.-]+))?$`)

// Version is a parsed version string. Minor, Patch, and RC are nil when
// absent from the source string.
type Version struct {
	Major     uint64
	Minor     *uint64
	Patch     *uint64
	RC        *uint64
	Qualifier string // accepted but ignored for ordering
	raw       string
}

// Parse parses s according to the package grammar. A leading "v" is
// optional on input.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	v := Version{raw: s, Qualifier: m[5]}
	var err error
	if v.Major, err = strconv.ParseUint(m[1], 10, 64); err != nil {
		return Version{}, fmt.Errorf("invalid major in %q: %w", s, err)
	}
	if m[2] != "" {
		n, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid minor in %q: %w", s, err)
		}
		v.Minor = &n
	}
	if m[3] != "" {
		n, err := strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid patch in %q: %w", s, err)
		}
		v.Patch = &n
	}
	if m[4] != "" {
		n, err := strconv.ParseUint(m[4], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid release candidate in %q: %w", s, err)
		}
		v.RC = &n
	}
	return v, nil
}

// MustParse is Parse for compile-time-known strings; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original source string.
func (v Version) String() string { return v.raw }

// FullySpecified reports whether minor and patch are both present.
func (v Version) FullySpecified() bool { return v.Minor != nil && v.Patch != nil }

// Compare orders v against o: -1, 0, or 1. A missing minor or patch on
// either side short-circuits the comparison to 0 at that component.
// Fully specified versions, including release-candidate ordering, are
// compared via semver with the rc ordinal normalized to a prerelease.
func (v Version) Compare(o Version) int {
	if v.FullySpecified() && o.FullySpecified() {
		return v.semver().Compare(o.semver())
	}

	if c := cmpUint(v.Major, o.Major); c != 0 {
		return c
	}
	if v.Minor == nil || o.Minor == nil {
		return 0
	}
	if c := cmpUint(*v.Minor, *o.Minor); c != 0 {
		return c
	}
	if v.Patch == nil || o.Patch == nil {
		return 0
	}
	return cmpUint(*v.Patch, *o.Patch)
}

// LessThan reports v < o.
func (v Version) LessThan(o Version) bool { return v.Compare(o) < 0 }

// semver renders a fully specified version as a semver.Version. The rc
// ordinal becomes the prerelease "rc.<n>" so that release candidates
// sort before the final release and among themselves by ordinal.
func (v Version) semver() *semver.Version {
	s := fmt.Sprintf("%d.%d.%d", v.Major, *v.Minor, *v.Patch)
	if v.RC != nil {
		s += fmt.Sprintf("-rc.%d", *v.RC)
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		// Unreachable for values produced by Parse.
		panic(fmt.Sprintf("version: rendering %q: %v", s, err))
	}
	return sv
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Range describes host-application compatibility: Min inclusive,
// Max (when present) exclusive.
type Range struct {
	Min Version
	Max *Version
}

// ParseRange parses min and an optional max ("" means unbounded).
func ParseRange(min, max string) (Range, error) {
	lo, err := Parse(min)
	if err != nil {
		return Range{}, fmt.Errorf("range minimum: %w", err)
	}
	r := Range{Min: lo}
	if max != "" {
		hi, err := Parse(max)
		if err != nil {
			return Range{}, fmt.Errorf("range maximum: %w", err)
		}
		r.Max = &hi
	}
	return r, nil
}

// Compatible reports whether host falls inside the range.
func (r Range) Compatible(host Version) bool {
	if host.Compare(r.Min) < 0 {
		return false
	}
	return r.Max == nil || host.Compare(*r.Max) < 0
}
