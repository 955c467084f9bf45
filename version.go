package nextversion

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// Calculate determines the next version of the repository from the commits
// made since its highest version tag. It returns ErrNoRelease when there are
// no such commits.
func Calculate(opts Options) (*Result, error) {
	if opts.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Apply tag pattern filter if specified
	if opts.TagPattern != "" && opts.TagFilter == nil {
		re, err := regexp.Compile(opts.TagPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid tag pattern: %w", err)
		}
		opts.TagFilter = func(tag string) bool {
			return re.MatchString(tag)
		}
	}

	base, err := determineBaseVersion(opts.Repository, opts.TagFilter, logger)
	if err != nil {
		return nil, fmt.Errorf("determining base version: %w", err)
	}

	head, err := resolveHead(opts.Repository, opts.Commitish)
	if err != nil {
		return nil, err
	}

	var boundary plumbing.Hash
	if base.Name != "" {
		boundary, err = opts.Repository.Resolve(base.Name)
	} else {
		boundary, err = opts.Repository.Root(head)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving base commit: %w", err)
	}

	logger.Debug("walking history",
		zap.String("base", base.Version.String()),
		zap.String("boundary", boundary.String()),
		zap.String("head", head.String()))

	commits, err := opts.Repository.Walk(head, boundary)
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	agg, err := aggregateCommits(opts.Repository, commits, opts.Patterns.withDefaults(), logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("aggregated bumps",
		zap.Uint64("commits", agg.ObjectsVisited),
		zap.Bool("major", agg.Major),
		zap.Bool("minor", agg.Minor),
		zap.Bool("patch", agg.Patch))

	result, err := Resolve(base.Version, agg)
	if err != nil {
		return nil, err
	}
	result.BaseTag = base.Name

	return &result, nil
}

func determineBaseVersion(repo Repository, tagFilter func(string) bool, logger *zap.Logger) (VersionTag, error) {
	tags, err := repo.TagNames()
	if err != nil {
		return VersionTag{}, err
	}

	for _, name := range tags {
		if _, err := ParseVersion(name); err != nil {
			logger.Debug("skipping tag that is not a version", zap.String("tag", name))
		}
	}

	highest, found := HighestVersion(tags, tagFilter)
	if !found {
		logger.Debug("no version tags found, using default base",
			zap.Int("tags", len(tags)),
			zap.String("base", DefaultBaseVersion().String()))
		return VersionTag{Version: DefaultBaseVersion()}, nil
	}

	logger.Debug("found base version",
		zap.String("tag", highest.Name),
		zap.String("version", highest.Version.String()))
	return highest, nil
}

func resolveHead(repo Repository, commitish plumbing.Revision) (plumbing.Hash, error) {
	if commitish == "" || commitish == "HEAD" {
		return repo.Head()
	}
	return repo.Resolve(string(commitish))
}

func aggregateCommits(repo Repository, commits []plumbing.Hash, patterns BumpPatterns, logger *zap.Logger) (BumpAggregate, error) {
	var agg BumpAggregate
	for _, id := range commits {
		message, err := repo.Message(id)
		if err != nil {
			return BumpAggregate{}, fmt.Errorf("reading commit message: %w", err)
		}

		signal := Classify(message, patterns)
		logger.Debug("classified commit",
			zap.String("commit", id.String()),
			zap.Stringer("bump", signal))
		agg.Add(signal)
	}
	return agg, nil
}

// IsNoRelease reports whether err means there was nothing to release
func IsNoRelease(err error) bool {
	return errors.Is(err, ErrNoRelease)
}
