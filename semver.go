// Package nextversion derives the next semantic version of a Git repository
// from the bump markers found in commit messages since the last version tag.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package nextversion

import (
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/blang/semver"
)

// Version is a semantic version. Ordering follows semver precedence, so
// build metadata never takes part in comparisons.
type Version struct {
	semver.Version
}

// DefaultBaseVersion is used when the repository carries no version tag.
// Seeding with 0.0.1 means the first release is never 0.0.0.
func DefaultBaseVersion() Version {
	return Version{semver.Version{Major: 0, Minor: 0, Patch: 1}}
}

// ParseVersion strictly parses a semantic version. A leading "v" and any
// module path prefix ("sdk/v1.2.3") are ignored.
func ParseVersion(text string) (Version, error) {
	v, err := semver.Parse(stripModuleTagPrefixes(text))
	if err != nil {
		return Version{}, &ParseError{Input: text, Err: err}
	}
	return Version{v}, nil
}

func stripModuleTagPrefixes(tag string) string {
	_, versionComponent := path.Split(tag)
	return strings.TrimPrefix(versionComponent, "v")
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or higher than o.
func (v Version) Compare(o Version) int {
	return v.Version.Compare(o.Version)
}

// IncrementMajor returns the next major version, e.g. 1.2.3 -> 2.0.0
func (v Version) IncrementMajor() Version {
	return Version{semver.Version{Major: v.Major + 1}}
}

// IncrementMinor returns the next minor version, e.g. 1.2.3 -> 1.3.0
func (v Version) IncrementMinor() Version {
	return Version{semver.Version{Major: v.Major, Minor: v.Minor + 1}}
}

// IncrementPatch returns the next patch version, e.g. 1.2.3 -> 1.2.4
func (v Version) IncrementPatch() Version {
	return Version{semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}}
}

// BuildNumber returns the numeric build metadata of v. Only a single
// identifier made of digits counts; anything else reports false. The
// largest uint64 has no successor and is reported as non-numeric.
func (v Version) BuildNumber() (uint64, bool) {
	if len(v.Build) != 1 {
		return 0, false
	}
	n, err := strconv.ParseUint(v.Build[0], 10, 64)
	if err != nil || n == math.MaxUint64 {
		return 0, false
	}
	return n, true
}

// WithBuild returns the major.minor.patch core of v carrying build as its
// only build metadata identifier.
func (v Version) WithBuild(build uint64) Version {
	return Version{semver.Version{
		Major: v.Major,
		Minor: v.Minor,
		Patch: v.Patch,
		Build: []string{strconv.FormatUint(build, 10)},
	}}
}

// Core renders major.minor.patch only
func (v Version) Core() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) String() string {
	return v.Version.String()
}
