package nextversion

// VersionTag is a tag name that parsed as a semantic version
type VersionTag struct {
	Name    string  `json:"name"`
	Version Version `json:"version"`
}

// HighestVersion returns the highest semantic version among tags. Tags that
// are not versions, or that filter rejects, are skipped. The second return
// value is false when no tag qualifies.
func HighestVersion(tags []string, filter func(string) bool) (VersionTag, bool) {
	var highest VersionTag
	found := false

	for _, name := range tags {
		if filter != nil && !filter(name) {
			continue
		}

		v, err := ParseVersion(name)
		if err != nil {
			continue
		}

		candidate := VersionTag{Name: name, Version: v}
		if !found || candidate.supersedes(highest) {
			highest = candidate
			found = true
		}
	}

	return highest, found
}

// supersedes orders tags of equal precedence as well, so that 1.2.3+6 wins
// over 1.2.3+5 and the pick never depends on tag listing order.
func (t VersionTag) supersedes(o VersionTag) bool {
	if c := t.Version.Compare(o.Version); c != 0 {
		return c > 0
	}

	tb, tok := t.Version.BuildNumber()
	ob, ook := o.Version.BuildNumber()
	if tok != ook {
		return tok
	}
	if tok && tb != ob {
		return tb > ob
	}

	return t.Name < o.Name
}
