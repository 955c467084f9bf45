package nextversion

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

var testEpoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func testSignature(offset int) *object.Signature {
	return &object.Signature{
		Name:  "test",
		Email: "test@example.com",
		When:  testEpoch.Add(time.Duration(offset) * time.Minute),
	}
}

// testRepoCreate creates a new in-memory git repository for testing
func testRepoCreate() (*git.Repository, error) {
	storage := memory.NewStorage()
	fs := memfs.New()
	return git.Init(storage, fs)
}

// testRepoCommit stores a commit with an empty tree straight into the object
// database, which allows arbitrary parents and committer times. The master
// branch is moved to the new commit.
func testRepoCommit(repo *git.Repository, message string, offset int, parents ...plumbing.Hash) (plumbing.Hash, error) {
	tree := repo.Storer.NewEncodedObject()
	if err := (&object.Tree{}).Encode(tree); err != nil {
		return plumbing.ZeroHash, err
	}
	treeHash, err := repo.Storer.SetEncodedObject(tree)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	commit := &object.Commit{
		Author:       *testSignature(offset),
		Committer:    *testSignature(offset),
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}

	obj := repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	hash, err := repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	err = repo.Storer.SetReference(plumbing.NewHashReference(plumbing.Master, hash))
	return hash, err
}

// testRepoHistory creates a linear history, one commit per message, and
// returns the hashes oldest first
func testRepoHistory(repo *git.Repository, messages ...string) ([]plumbing.Hash, error) {
	var hashes []plumbing.Hash
	for i, message := range messages {
		var parents []plumbing.Hash
		if i > 0 {
			parents = append(parents, hashes[i-1])
		}
		hash, err := testRepoCommit(repo, message, i, parents...)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

// testRepoWorktreeCommit commits a file through the worktree, the way a user would
func testRepoWorktreeCommit(repo *git.Repository, filename, message string) (plumbing.Hash, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := writeFile(workTree.Filesystem, filename, message); err != nil {
		return plumbing.ZeroHash, err
	}

	if _, err := workTree.Add(filename); err != nil {
		return plumbing.ZeroHash, err
	}

	return workTree.Commit(message, &git.CommitOptions{Author: testSignature(0)})
}

// writeFile writes content to a file in the given filesystem
func writeFile(fs billy.Filesystem, filename, content string) error {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte(content))
	return err
}
