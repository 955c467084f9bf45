// Package nextversion derives the next semantic version of a Git repository
// from the bump markers found in commit messages since the last version tag.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package nextversion

import (
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// LanguageVersions contains version strings for different language ecosystems
type LanguageVersions struct {
	SemVer     string `json:"semver"`
	Python     string `json:"python"`
	JavaScript string `json:"javascript"`
	DotNet     string `json:"dotnet"`
	Go         string `json:"go"`
}

// Options configures version calculation behavior
type Options struct {
	// Repository is the Git repository to analyze
	Repository Repository

	// Commitish specifies which commit to analyze (default: HEAD)
	Commitish plumbing.Revision

	// Patterns selects the bump markers; nil patterns use the defaults
	Patterns BumpPatterns

	// TagFilter allows filtering which tags to consider
	TagFilter func(string) bool

	// TagPattern is a regex pattern to filter tags (alternative to TagFilter)
	TagPattern string

	// Logger receives debug output; nil disables logging
	Logger *zap.Logger
}

// Result is the outcome of a version calculation
type Result struct {
	// Version is the next version
	Version Version `json:"version"`

	// Base is the highest tagged version, or the default seed
	Base Version `json:"base"`

	// BaseTag names the tag Base was read from; empty for the seed
	BaseTag string `json:"baseTag,omitempty"`

	// Bump is the strongest level applied
	Bump BumpSignal `json:"bump"`

	// Build reports that no marker was found and build metadata was bumped
	Build bool `json:"build"`

	Aggregate BumpAggregate `json:"aggregate"`
}
