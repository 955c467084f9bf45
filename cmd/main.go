package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/jaxxstorm/nextversion"
	"go.uber.org/zap"
)

// Version will be set by build process
var Version = "dev"

const (
	exitError     = 1
	exitNoRelease = 2
)

type CLI struct {
	Repo        string          `arg:"" optional:"" default:"." help:"Git repository path (default: current directory)"`
	Major       string          `short:"M" default:"${major_pattern}" env:"NEXTVERSION_MAJOR_PATTERN" help:"Regex marking a commit as a major bump"`
	Minor       string          `short:"m" default:"${minor_pattern}" env:"NEXTVERSION_MINOR_PATTERN" help:"Regex marking a commit as a minor bump"`
	Patch       string          `short:"p" default:"${patch_pattern}" env:"NEXTVERSION_PATCH_PATTERN" help:"Regex marking a commit as a patch bump"`
	Commitish   string          `short:"c" default:"HEAD" env:"NEXTVERSION_COMMITISH" help:"Git commitish to analyze"`
	TagPattern  string          `env:"NEXTVERSION_TAG_PATTERN" help:"Regex pattern to filter tags (e.g., '^sdk/')"`
	Language    string          `short:"l" default:"generic" enum:"generic,semver,python,javascript,js,node,dotnet,csharp,go,golang" help:"Output format"`
	JSON        bool            `short:"j" help:"Output as JSON"`
	Verbose     bool            `short:"v" env:"NEXTVERSION_VERBOSE" help:"Log debug output to stderr"`
	Config      kong.ConfigFlag `help:"Load options from a YAML file"`
	ShowVersion bool            `help:"Show version information" name:"version"`

	stdout io.Writer   `kong:"-"`
	logger *zap.Logger `kong:"-"`
}

func main() {
	var cli CLI

	kong.Parse(&cli, parserOptions()...)

	err := cli.Run()
	if nextversion.IsNoRelease(err) {
		if cli.Verbose {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitNoRelease)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("nextversion"),
		kong.Description("Calculate the next semantic version from commit messages since the last version tag"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(yamlConfigLoader, ".nextversion.yaml", "~/.config/nextversion.yaml"),
		kong.Vars{
			"version":       Version,
			"major_pattern": nextversion.DefaultMajorPattern,
			"minor_pattern": nextversion.DefaultMinorPattern,
			"patch_pattern": nextversion.DefaultPatchPattern,
		},
	}
}

func (c *CLI) Run() error {
	if c.stdout == nil {
		c.stdout = os.Stdout
	}

	// Handle version flag
	if c.ShowVersion {
		return c.showVersion()
	}

	if c.logger == nil {
		logger, err := newLogger(c.Verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()
		c.logger = logger
	}

	return c.calculateVersion()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func (c *CLI) showVersion() error {
	versionInfo := map[string]string{
		"version": Version,
		"name":    "nextversion",
	}

	if c.JSON {
		return json.NewEncoder(c.stdout).Encode(versionInfo)
	}

	_, err := fmt.Fprintf(c.stdout, "nextversion version %s\n", Version)
	return err
}

func (c *CLI) calculateVersion() error {
	repoPath := c.Repo
	if repoPath == "" {
		repoPath = "."
	}

	patterns, err := nextversion.CompilePatterns(c.Major, c.Minor, c.Patch)
	if err != nil {
		return err
	}

	repo, err := nextversion.OpenRepository(repoPath)
	if err != nil {
		return err
	}

	result, err := nextversion.Calculate(nextversion.Options{
		Repository: repo,
		Commitish:  plumbing.Revision(c.Commitish),
		Patterns:   patterns,
		TagPattern: c.TagPattern,
		Logger:     c.logger,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return json.NewEncoder(c.stdout).Encode(result)
	}

	// No trailing newline so the output can be used as-is in scripts
	_, err = fmt.Fprint(c.stdout, getVersionOutput(result.Languages(), c.Language))
	return err
}

func getVersionOutput(versions *nextversion.LanguageVersions, language string) string {
	switch strings.ToLower(language) {
	case "generic", "semver":
		return versions.SemVer
	case "python":
		return versions.Python
	case "javascript", "js", "node":
		return versions.JavaScript
	case "dotnet", ".net", "csharp":
		return versions.DotNet
	case "go", "golang":
		return versions.Go
	default:
		return versions.SemVer
	}
}
