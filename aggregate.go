package nextversion

// BumpAggregate accumulates bump signals over the walked commits. Flags are
// only ever set, never cleared, so folding is order-insensitive.
type BumpAggregate struct {
	ObjectsVisited uint64 `json:"objectsVisited"`
	Major          bool   `json:"major"`
	Minor          bool   `json:"minor"`
	Patch          bool   `json:"patch"`
}

// Add records one visited commit and its signal
func (a *BumpAggregate) Add(signal BumpSignal) {
	a.ObjectsVisited++

	switch signal {
	case BumpMajor:
		a.Major = true
	case BumpMinor:
		a.Minor = true
	case BumpPatch:
		a.Patch = true
	}
}

// Merge combines two aggregates built over disjoint sets of commits
func (a BumpAggregate) Merge(o BumpAggregate) BumpAggregate {
	return BumpAggregate{
		ObjectsVisited: a.ObjectsVisited + o.ObjectsVisited,
		Major:          a.Major || o.Major,
		Minor:          a.Minor || o.Minor,
		Patch:          a.Patch || o.Patch,
	}
}

// Highest returns the strongest signal seen
func (a BumpAggregate) Highest() BumpSignal {
	switch {
	case a.Major:
		return BumpMajor
	case a.Minor:
		return BumpMinor
	case a.Patch:
		return BumpPatch
	default:
		return BumpNone
	}
}

// Aggregate classifies every message and folds the results
func Aggregate(messages []string, patterns BumpPatterns) BumpAggregate {
	patterns = patterns.withDefaults()

	var agg BumpAggregate
	for _, message := range messages {
		agg.Add(Classify(message, patterns))
	}
	return agg
}
