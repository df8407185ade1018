// Package mcpserver exposes the core's six public API operations
// (spec.md §6) as MCP tools, so editor and agent integrations can drive the
// slicer the same way the CLI does. Grounded on the teacher's
// internal/mcptools/server.go (mcp.NewServer, mcp.AddTool) and handlers.go
// (one handler method per tool, returning (*mcp.CallToolResult, Output, error)).
package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with all six core operations registered
// as tools against svc.
func NewServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "semslice",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_language",
		Description: "Detect the language tag for a file path by its extension.",
	}, svc.DetectLanguage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "open_file",
		Description: "Parse one source file and extract its top-level declarations.",
	}, svc.OpenFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_batch",
		Description: "Parse a set of source files in parallel, collecting per-file successes and failures.",
	}, svc.ParseBatch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "locate_changes",
		Description: "Given a file and a set of changed line ranges, return the declarations the change touched.",
	}, svc.LocateChanges)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Expand a seed declaration into its bounded-depth dependency closure across a first-party model set.",
	}, svc.Resolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Resolve a seed declaration and render the deterministic code-slice artifact, marking changed lines.",
	}, svc.Render)

	return server
}

// Run starts an HTTP server exposing the semslice MCP tools at addr, until
// ctx is cancelled.
func Run(ctx context.Context, svc *Service, addr string) error {
	server := NewServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
