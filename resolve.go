package nextversion

// Resolve computes the next version from base and the bumps found since it.
// Bumps are applied patch, then minor, then major; each resets the lower
// components, so the strongest bump decides the outcome. When commits exist
// but none carries a marker, the base keeps its core and its numeric build
// metadata is incremented (absent counts as 0). With no commits at all
// Resolve returns ErrNoRelease.
func Resolve(base Version, agg BumpAggregate) (Result, error) {
	if agg.ObjectsVisited == 0 {
		return Result{}, ErrNoRelease
	}

	result := Result{
		Base:      base,
		Bump:      agg.Highest(),
		Aggregate: agg,
	}

	next := base
	if agg.Patch {
		next = next.IncrementPatch()
	}
	if agg.Minor {
		next = next.IncrementMinor()
	}
	if agg.Major {
		next = next.IncrementMajor()
	}

	if result.Bump == BumpNone {
		build, _ := base.BuildNumber()
		next = base.WithBuild(build + 1)
		result.Build = true
	}

	result.Version = next
	return result, nil
}

// String renders the resolved version: major.minor.patch, plus +build when
// no marker was found.
func (r Result) String() string {
	if r.Build {
		return r.Version.String()
	}
	return r.Version.Core()
}

// Languages renders the resolved version for different language ecosystems
func (r Result) Languages() *LanguageVersions {
	version := r.String()

	// PEP 440 local versions share the "+N" suffix syntax
	return &LanguageVersions{
		SemVer:     version,
		Python:     version,
		JavaScript: "v" + version,
		DotNet:     version,
		Go:         "v" + version,
	}
}
