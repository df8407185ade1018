package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/semslice/internal/driver"
	"github.com/dusk-indust/semslice/internal/ingest"
	"github.com/dusk-indust/semslice/internal/locate"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/render"
	"github.com/dusk-indust/semslice/internal/resolve"
)

// Service holds the parser cache every tool handler shares, so repeated
// calls within one session reuse adapters instead of reconstructing the
// full pool per request.
type Service struct {
	drv *driver.Driver
}

// NewService creates a Service with its own parser cache.
func NewService() *Service {
	return &Service{drv: driver.New(nil)}
}

// DetectLanguage implements the detect_language tool.
func (s *Service) DetectLanguage(
	_ context.Context, _ *mcp.CallToolRequest, input DetectLanguageInput,
) (*mcp.CallToolResult, DetectLanguageOutput, error) {
	lang, ok := ingest.DetectLanguage(input.Path)
	return nil, DetectLanguageOutput{Language: string(lang), Known: ok}, nil
}

// OpenFile implements the open_file tool.
func (s *Service) OpenFile(
	_ context.Context, _ *mcp.CallToolRequest, input OpenFileInput,
) (*mcp.CallToolResult, OpenFileOutput, error) {
	sf, err := ingest.Open(s.drv.Factory(), input.Path, model.Language(input.Language))
	if err != nil {
		return nil, OpenFileOutput{}, err
	}
	defer sf.Close()

	out := OpenFileOutput{Path: sf.Path, Language: string(sf.Language), Package: sf.Payload.PackageName}
	for _, d := range sf.Payload.Declarations {
		out.Declarations = append(out.Declarations, declInfo(d))
	}
	return nil, out, nil
}

// ParseBatch implements the parse_batch tool.
func (s *Service) ParseBatch(
	ctx context.Context, _ *mcp.CallToolRequest, input ParseBatchInput,
) (*mcp.CallToolResult, ParseBatchOutput, error) {
	reqs := make([]driver.Request, len(input.Paths))
	for i, p := range input.Paths {
		reqs[i] = driver.Request{Path: p}
	}
	result := s.drv.ParseBatch(ctx, reqs, input.Workers)
	for _, sf := range result.Successes {
		sf.Close()
	}

	out := ParseBatchOutput{Succeeded: result.Stats.Succeeded, Failed: result.Stats.Failed}
	for _, f := range result.Failures {
		out.Failures = append(out.Failures, FailureInfo{Path: f.Path, Error: f.Err.Error()})
	}
	return nil, out, nil
}

// LocateChanges implements the locate_changes tool.
func (s *Service) LocateChanges(
	_ context.Context, _ *mcp.CallToolRequest, input LocateChangesInput,
) (*mcp.CallToolResult, LocateChangesOutput, error) {
	sf, err := ingest.Open(s.drv.Factory(), input.Path, "")
	if err != nil {
		return nil, LocateChangesOutput{}, err
	}
	defer sf.Close()

	decls := locate.Changed(sf, toModelHunks(input.Hunks))
	out := LocateChangesOutput{}
	for _, d := range decls {
		out.Declarations = append(out.Declarations, declInfo(d))
	}
	return nil, out, nil
}

// Resolve implements the resolve tool.
func (s *Service) Resolve(
	_ context.Context, _ *mcp.CallToolRequest, input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	files, seed, seedFile, err := s.openAndFindSeed(input)
	if err != nil {
		return nil, ResolveOutput{}, err
	}
	defer closeAll(files)

	opts := model.DefaultResolveOptions()
	if input.MaxDepth > 0 {
		opts.MaxDepth = input.MaxDepth
	}
	ctx := resolve.Resolve(seed, seedFile, files, opts)
	return nil, toResolveOutput(ctx), nil
}

// Render implements the render tool.
func (s *Service) Render(
	_ context.Context, _ *mcp.CallToolRequest, input RenderInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	files, seed, seedFile, err := s.openAndFindSeed(input.ResolveInput)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	defer closeAll(files)

	opts := model.DefaultResolveOptions()
	if input.MaxDepth > 0 {
		opts.MaxDepth = input.MaxDepth
	}
	ctx := resolve.Resolve(seed, seedFile, files, opts)

	hunks := toModelHunks(input.Hunks)
	renderOpts := model.RenderOptions{
		Marker: input.Marker, HeaderTemplate: input.HeaderTemplate, CommitID: input.CommitID,
	}
	artifact := render.Render(ctx, hunks, renderOpts)
	return nil, RenderOutput{Artifact: artifact}, nil
}

func (s *Service) openAndFindSeed(input ResolveInput) ([]*model.SourceFile, *model.Declaration, *model.SourceFile, error) {
	var files []*model.SourceFile
	for _, p := range input.Paths {
		sf, err := ingest.Open(s.drv.Factory(), p, "")
		if err != nil {
			closeAll(files)
			return nil, nil, nil, err
		}
		files = append(files, sf)
	}

	for _, sf := range files {
		if sf.Path != input.SeedPath {
			continue
		}
		for i := range sf.Payload.Declarations {
			d := &sf.Payload.Declarations[i]
			if d.Name != input.SeedName {
				continue
			}
			if input.SeedKind != "" && string(d.Kind) != input.SeedKind {
				continue
			}
			if input.SeedReceiver != "" && (d.Receiver == nil || d.Receiver.TypeName != input.SeedReceiver) {
				continue
			}
			return files, d, sf, nil
		}
	}
	closeAll(files)
	return nil, nil, nil, fmt.Errorf("seed declaration %q not found in %s", input.SeedName, input.SeedPath)
}

func closeAll(files []*model.SourceFile) {
	for _, f := range files {
		f.Close()
	}
}

func toResolveOutput(ctx model.SemanticContext) ResolveOutput {
	out := ResolveOutput{Seed: declInfo(*ctx.Seed.Decl)}
	for _, rd := range ctx.Types {
		out.Types = append(out.Types, declInfo(*rd.Decl))
	}
	for _, rd := range ctx.Functions {
		out.Functions = append(out.Functions, declInfo(*rd.Decl))
	}
	for _, rd := range ctx.Constants {
		out.Constants = append(out.Constants, declInfo(*rd.Decl))
	}
	for _, imp := range ctx.Imports {
		out.Imports = append(out.Imports, imp.Path)
	}
	for _, u := range ctx.Unresolved {
		out.Unresolved = append(out.Unresolved, u.Name)
	}
	return out
}
