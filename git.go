// Package nextversion derives the next semantic version of a Git repository
// from the bump markers found in commit messages since the last version tag.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package nextversion

import (
	"bytes"
	"errors"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is the read-only view of version control the calculation needs
type Repository interface {
	// TagNames lists the short names of all tags
	TagNames() ([]string, error)

	// Resolve returns the commit a tag or revision points at
	Resolve(ref string) (plumbing.Hash, error)

	// Head returns the commit HEAD points at
	Head() (plumbing.Hash, error)

	// Root returns the oldest parentless commit reachable from from
	Root(from plumbing.Hash) (plumbing.Hash, error)

	// Walk lists the commits reachable from from that are neither excluding
	// nor one of its ancestors, parents before children
	Walk(from, excluding plumbing.Hash) ([]plumbing.Hash, error)

	// Message returns the commit message of id
	Message(id plumbing.Hash) (string, error)
}

// GitRepository implements Repository on top of go-git
type GitRepository struct {
	repo *git.Repository
}

var _ Repository = (*GitRepository)(nil)

// NewGitRepository wraps an already opened go-git repository
func NewGitRepository(repo *git.Repository) *GitRepository {
	return &GitRepository{repo: repo}
}

// OpenRepository opens a Git repository at the specified path
func OpenRepository(path string) (*GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, accessError("opening repository", path, err)
	}
	return NewGitRepository(repo), nil
}

func (r *GitRepository) TagNames() ([]string, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return nil, accessError("listing tags", "", err)
	}

	var names []string
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, accessError("listing tags", "", err)
	}

	return names, nil
}

// Resolve prefers a tag of the given name, peeling annotated tags to their
// commit, and falls back to general revision syntax.
func (r *GitRepository) Resolve(ref string) (plumbing.Hash, error) {
	tagRef, err := r.repo.Reference(plumbing.NewTagReferenceName(ref), true)
	switch {
	case err == nil:
		return r.peel(ref, tagRef.Hash())
	case !errors.Is(err, plumbing.ErrReferenceNotFound):
		return plumbing.ZeroHash, accessError("resolving", ref, err)
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, accessError("resolving", ref, err)
	}
	return *hash, nil
}

func (r *GitRepository) peel(ref string, hash plumbing.Hash) (plumbing.Hash, error) {
	obj, err := r.repo.TagObject(hash)
	switch err {
	case nil:
		// Annotated tag, possibly pointing at further tags
		for obj.TargetType == plumbing.TagObject {
			obj, err = r.repo.TagObject(obj.Target)
			if err != nil {
				return plumbing.ZeroHash, accessError("peeling tag", ref, err)
			}
		}
		commit, err := obj.Commit()
		if err != nil {
			return plumbing.ZeroHash, accessError("peeling tag", ref, err)
		}
		return commit.Hash, nil
	case plumbing.ErrObjectNotFound:
		// Lightweight tag
		return hash, nil
	default:
		return plumbing.ZeroHash, accessError("reading tag", ref, err)
	}
}

func (r *GitRepository) Head() (plumbing.Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, accessError("resolving", "HEAD", err)
	}
	return ref.Hash(), nil
}

// Root picks the earliest root commit when history has several, so merged
// unrelated histories still resolve to the same commit on every run.
func (r *GitRepository) Root(from plumbing.Hash) (plumbing.Hash, error) {
	start, err := r.commit(from)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	var root *object.Commit
	err = object.NewCommitPreorderIter(start, nil, nil).ForEach(func(c *object.Commit) error {
		if c.NumParents() == 0 && (root == nil || olderThan(c, root)) {
			root = c
		}
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, accessError("walking history", from.String(), err)
	}
	if root == nil {
		return plumbing.ZeroHash, accessError("finding root commit", from.String(), plumbing.ErrObjectNotFound)
	}

	return root.Hash, nil
}

func (r *GitRepository) Walk(from, excluding plumbing.Hash) ([]plumbing.Hash, error) {
	head, err := r.commit(from)
	if err != nil {
		return nil, err
	}
	boundary, err := r.commit(excluding)
	if err != nil {
		return nil, err
	}

	hidden := make(map[plumbing.Hash]bool)
	err = object.NewCommitPreorderIter(boundary, nil, nil).ForEach(func(c *object.Commit) error {
		hidden[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, accessError("walking history", excluding.String(), err)
	}

	var commits []*object.Commit
	err = object.NewCommitPreorderIter(head, hidden, nil).ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, accessError("walking history", from.String(), err)
	}

	return sortTopological(commits), nil
}

func (r *GitRepository) Message(id plumbing.Hash) (string, error) {
	c, err := r.commit(id)
	if err != nil {
		return "", err
	}
	return c.Message, nil
}

func (r *GitRepository) commit(id plumbing.Hash) (*object.Commit, error) {
	c, err := r.repo.CommitObject(id)
	if err != nil {
		return nil, accessError("reading commit", id.String(), err)
	}
	return c, nil
}

// sortTopological orders commits so that every commit follows its parents
// within the set. Among commits that are ready at the same time the oldest
// by committer time goes first, then the lowest hash.
func sortTopological(commits []*object.Commit) []plumbing.Hash {
	inSet := make(map[plumbing.Hash]bool, len(commits))
	for _, c := range commits {
		inSet[c.Hash] = true
	}

	pending := make(map[plumbing.Hash]int, len(commits))
	children := make(map[plumbing.Hash][]*object.Commit)
	var ready []*object.Commit

	for _, c := range commits {
		for _, parent := range c.ParentHashes {
			if inSet[parent] {
				pending[c.Hash]++
				children[parent] = append(children[parent], c)
			}
		}
		if pending[c.Hash] == 0 {
			ready = append(ready, c)
		}
	}

	ordered := make([]plumbing.Hash, 0, len(commits))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return olderThan(ready[i], ready[j])
		})

		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, next.Hash)

		for _, child := range children[next.Hash] {
			pending[child.Hash]--
			if pending[child.Hash] == 0 {
				ready = append(ready, child)
			}
		}
	}

	return ordered
}

func olderThan(a, b *object.Commit) bool {
	if !a.Committer.When.Equal(b.Committer.When) {
		return a.Committer.When.Before(b.Committer.When)
	}
	return bytes.Compare(a.Hash[:], b.Hash[:]) < 0
}
