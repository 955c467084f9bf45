package nextversion

import (
	"fmt"
	"regexp"
)

// Default bump markers. Each one matches its own word only, so a message
// never hits a default pattern by accident of another.
const (
	DefaultMajorPattern = `(?i)\bmajor\b`
	DefaultMinorPattern = `(?i)\bminor\b`
	DefaultPatchPattern = `(?i)\bpatch\b`
)

// BumpSignal is the bump level a single commit asks for
type BumpSignal int

const (
	BumpNone BumpSignal = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (s BumpSignal) String() string {
	switch s {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

func (s BumpSignal) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BumpPatterns holds the regular expressions that mark a commit message as
// a major, minor or patch bump. A nil pattern falls back to its default.
type BumpPatterns struct {
	Major *regexp.Regexp
	Minor *regexp.Regexp
	Patch *regexp.Regexp
}

// DefaultPatterns returns the built-in markers
func DefaultPatterns() BumpPatterns {
	return BumpPatterns{
		Major: regexp.MustCompile(DefaultMajorPattern),
		Minor: regexp.MustCompile(DefaultMinorPattern),
		Patch: regexp.MustCompile(DefaultPatchPattern),
	}
}

// CompilePatterns compiles the three bump patterns. An empty string selects
// the default for that level only.
func CompilePatterns(major, minor, patch string) (BumpPatterns, error) {
	var patterns BumpPatterns
	var err error

	if patterns.Major, err = compilePattern("major", major, DefaultMajorPattern); err != nil {
		return BumpPatterns{}, err
	}
	if patterns.Minor, err = compilePattern("minor", minor, DefaultMinorPattern); err != nil {
		return BumpPatterns{}, err
	}
	if patterns.Patch, err = compilePattern("patch", patch, DefaultPatchPattern); err != nil {
		return BumpPatterns{}, err
	}

	return patterns, nil
}

func compilePattern(level, expr, fallback string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = fallback
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern: %w", level, err)
	}
	return re, nil
}

func (p BumpPatterns) withDefaults() BumpPatterns {
	defaults := DefaultPatterns()
	if p.Major == nil {
		p.Major = defaults.Major
	}
	if p.Minor == nil {
		p.Minor = defaults.Minor
	}
	if p.Patch == nil {
		p.Patch = defaults.Patch
	}
	return p
}

// Classify returns the highest bump level message matches. Levels are
// tested major first, so a message matching several is reported once.
func Classify(message string, patterns BumpPatterns) BumpSignal {
	patterns = patterns.withDefaults()

	switch {
	case patterns.Major.MatchString(message):
		return BumpMajor
	case patterns.Minor.MatchString(message):
		return BumpMinor
	case patterns.Patch.MatchString(message):
		return BumpPatch
	default:
		return BumpNone
	}
}
