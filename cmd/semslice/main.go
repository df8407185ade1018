// Command semslice is the CLI front end for the core: given a repository
// root and a commit identifier, it asks the VCS collaborator for the
// commit's FileChange set, parses the repository's first-party source
// files, locates the declarations each hunk touched, resolves each into a
// semantic context, and renders a code-slice artifact per seed. Grounded on
// the teacher's cmd/decompose/main.go flag.NewFlagSet + run(args) shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/dusk-indust/semslice/internal/config"
	"github.com/dusk-indust/semslice/internal/driver"
	"github.com/dusk-indust/semslice/internal/locate"
	"github.com/dusk-indust/semslice/internal/mcpserver"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/render"
	"github.com/dusk-indust/semslice/internal/resolve"
	"github.com/dusk-indust/semslice/internal/vcs"
)

// Exit codes, per spec.md §6.
const (
	exitOK             = 0
	exitUsage          = 2
	exitVCSError       = 3
	exitPartialFailure = 4
	exitFatal          = 5
)

// version is set by the linker at build time.
var version = "dev"

type cliFlags struct {
	Depth    int
	Workers  int
	Language string
	Output   string
	Marker   string
	ServeMCP bool
	MCPAddr  string
	Verbose  bool
	Version  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var flags cliFlags

	fs := flag.NewFlagSet("semslice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&flags.Depth, "depth", 5, "dependency expansion depth bound")
	fs.IntVar(&flags.Workers, "workers", 0, "worker count (default: host core count)")
	fs.StringVar(&flags.Language, "language", "", "only slice files whose suffix-detected language is this tag (detection itself is not overridden)")
	fs.StringVar(&flags.Output, "output", "", "output path (default: stdout)")
	fs.StringVar(&flags.Marker, "marker", "", "change marker token appended to touched lines")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server instead of slicing a commit")
	fs.StringVar(&flags.MCPAddr, "mcp-addr", ":8787", "listen address for --serve-mcp")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log per-file progress to stderr")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	if flags.ServeMCP {
		if err := mcpserver.Run(context.Background(), mcpserver.NewService(), flags.MCPAddr); err != nil {
			fmt.Fprintf(stderr, "fatal: mcp server: %v\n", err)
			return exitFatal
		}
		return exitOK
	}

	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(stderr, "usage: semslice <repo-path> <commit-id> [flags]")
		return exitUsage
	}
	repoRoot, commitID := rest[0], rest[1]

	cfg, err := config.Load(repoRoot)
	if err != nil {
		fmt.Fprintf(stderr, "usage error: loading config: %v\n", err)
		return exitUsage
	}

	opts := cfg.ResolveOptions()
	depthSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "depth" {
			depthSet = true
		}
	})
	if depthSet && flags.Depth > 0 {
		opts.MaxDepth = flags.Depth
	}
	if flags.Workers <= 0 {
		flags.Workers = cfg.Workers
	}
	renderOpts := cfg.RenderOptions()
	if flags.Marker != "" {
		renderOpts.Marker = flags.Marker
	}
	renderOpts.CommitID = commitID

	return slice(repoRoot, commitID, flags, opts, renderOpts, cfg, stdout, stderr)
}

func slice(repoRoot, commitID string, flags cliFlags, opts model.ResolveOptions, renderOpts model.RenderOptions, cfg *config.ProjectConfig, stdout, stderr io.Writer) int {
	gitDriver := vcs.GitCLI{}
	changes, err := gitDriver.Changes(context.Background(), repoRoot, commitID)
	if err != nil {
		fmt.Fprintf(stderr, "vcs error: %v\n", err)
		return exitVCSError
	}

	paths, err := discoverSources(repoRoot, flags.Language, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return exitFatal
	}

	drv := driver.New(func(ev driver.Event) {
		if flags.Verbose {
			fmt.Fprintln(stderr, ev.Format())
		}
	})
	reqs := make([]driver.Request, len(paths))
	for i, p := range paths {
		reqs[i] = driver.Request{Path: p}
	}
	batch := drv.ParseBatch(context.Background(), reqs, flags.Workers)
	defer func() {
		for _, sf := range batch.Successes {
			sf.Close()
		}
	}()

	for _, f := range batch.Failures {
		log.Printf("parse failed: %s: %v", f.Path, f.Err)
	}

	byPath := make(map[string]*model.SourceFile, len(batch.Successes))
	for _, sf := range batch.Successes {
		byPath[filepath.Clean(sf.Path)] = sf
	}

	out := stdout
	if flags.Output != "" {
		f, err := os.Create(flags.Output)
		if err != nil {
			fmt.Fprintf(stderr, "fatal: opening output: %v\n", err)
			return exitFatal
		}
		defer f.Close()
		out = f
	}

	fatal := false
	for _, change := range changes {
		sf, ok := byPath[filepath.Clean(filepath.Join(repoRoot, change.Path))]
		if !ok {
			continue
		}
		if locate.OutOfRange(sf, change.Hunks) {
			log.Printf("change out of range: %s", change.Path)
			continue
		}
		seeds := locate.Changed(sf, change.Hunks)
		for i := range seeds {
			ctx := resolve.Resolve(&seeds[i], sf, batch.Successes, opts)
			artifact := render.Render(ctx, change.Hunks, renderOpts)
			if _, err := fmt.Fprint(out, artifact); err != nil {
				fmt.Fprintf(stderr, "fatal: writing output: %v\n", err)
				fatal = true
			}
		}
	}

	switch {
	case fatal:
		return exitFatal
	case len(batch.Failures) > 0:
		return exitPartialFailure
	default:
		return exitOK
	}
}

// discoverSources walks repoRoot, collecting every file whose extension is
// recognized by a registered language (optionally restricted to one
// language tag), skipping directories the project config excludes.
func discoverSources(repoRoot, languageFlag string, cfg *config.ProjectConfig) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != repoRoot && cfg.ExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := model.LanguageForExtension(filepath.Ext(path))
		if !ok {
			return nil
		}
		if languageFlag != "" && string(lang) != languageFlag {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
