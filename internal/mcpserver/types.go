package mcpserver

import "github.com/dusk-indust/semslice/internal/model"

// DetectLanguageInput is the input for the detect_language tool.
type DetectLanguageInput struct {
	Path string `json:"path" jsonschema:"file path to detect the language of"`
}

// DetectLanguageOutput is the result of the detect_language tool.
type DetectLanguageOutput struct {
	Language string `json:"language"`
	Known    bool   `json:"known"`
}

// OpenFileInput is the input for the open_file tool.
type OpenFileInput struct {
	Path     string `json:"path" jsonschema:"file path to parse"`
	Language string `json:"language,omitempty" jsonschema:"explicit language tag, overriding suffix detection"`
}

// OpenFileOutput is the result of the open_file tool.
type OpenFileOutput struct {
	Path         string            `json:"path"`
	Language     string            `json:"language"`
	Package      string            `json:"package,omitempty"`
	Declarations []DeclarationInfo `json:"declarations"`
}

// DeclarationInfo is the wire-safe projection of a model.Declaration: the
// MCP tool surface never serializes the CST-backed SourceFile itself.
type DeclarationInfo struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualifiedName"`
	StartLine     int    `json:"startLine"`
	EndLine       int    `json:"endLine"`
	ReceiverType  string `json:"receiverType,omitempty"`
}

func declInfo(d model.Declaration) DeclarationInfo {
	info := DeclarationInfo{
		Kind: string(d.Kind), Name: d.Name, QualifiedName: d.QualifiedName(),
		StartLine: d.StartLine, EndLine: d.EndLine,
	}
	if d.Receiver != nil {
		info.ReceiverType = d.Receiver.TypeName
	}
	return info
}

// ParseBatchInput is the input for the parse_batch tool.
type ParseBatchInput struct {
	Paths   []string `json:"paths" jsonschema:"file paths to parse"`
	Workers int      `json:"workers,omitempty" jsonschema:"worker count, default host core count"`
}

// ParseBatchOutput is the result of the parse_batch tool.
type ParseBatchOutput struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []FailureInfo `json:"failures,omitempty"`
}

// FailureInfo names one per-file failure from a batch operation.
type FailureInfo struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// HunkInput is the wire-safe projection of model.Hunk for tool inputs.
type HunkInput struct {
	OldStart int `json:"oldStart"`
	OldEnd   int `json:"oldEnd"`
	NewStart int `json:"newStart"`
	NewEnd   int `json:"newEnd"`
}

func toModelHunks(hunks []HunkInput) []model.Hunk {
	out := make([]model.Hunk, 0, len(hunks))
	for _, h := range hunks {
		out = append(out, model.Hunk{
			OldRange: model.LineRange{Start: h.OldStart, End: h.OldEnd},
			NewRange: model.LineRange{Start: h.NewStart, End: h.NewEnd},
		})
	}
	return out
}

// LocateChangesInput is the input for the locate_changes tool.
type LocateChangesInput struct {
	Path  string      `json:"path" jsonschema:"file path the hunks apply to"`
	Hunks []HunkInput `json:"hunks" jsonschema:"changed line ranges"`
}

// LocateChangesOutput is the result of the locate_changes tool.
type LocateChangesOutput struct {
	Declarations []DeclarationInfo `json:"declarations"`
}

// ResolveInput is the input for the resolve tool: a seed declaration
// identified by file/name/kind, and the set of paths forming the run's
// first-party model set.
type ResolveInput struct {
	Paths          []string `json:"paths" jsonschema:"every source file in the first-party model set"`
	SeedPath       string   `json:"seedPath" jsonschema:"file the seed declaration is defined in"`
	SeedName       string   `json:"seedName" jsonschema:"name of the seed declaration"`
	SeedKind       string   `json:"seedKind,omitempty" jsonschema:"function, method, type, constant, or variable"`
	SeedReceiver   string   `json:"seedReceiver,omitempty" jsonschema:"receiver type, required to disambiguate a method seed"`
	MaxDepth       int      `json:"maxDepth,omitempty" jsonschema:"dependency expansion depth bound, default 5"`
	FirstPartyOnly bool     `json:"firstPartyOnly,omitempty" jsonschema:"ignored; resolution is always restricted to the given paths' packages"`
}

// ResolveOutput is the result of the resolve tool.
type ResolveOutput struct {
	Seed       DeclarationInfo   `json:"seed"`
	Types      []DeclarationInfo `json:"types,omitempty"`
	Functions  []DeclarationInfo `json:"functions,omitempty"`
	Constants  []DeclarationInfo `json:"constants,omitempty"`
	Imports    []string          `json:"imports,omitempty"`
	Unresolved []string          `json:"unresolved,omitempty"`
}

// RenderInput is the input for the render tool: a resolve request plus the
// hunks that drive the change marker and the header fields.
type RenderInput struct {
	ResolveInput
	Hunks          []HunkInput `json:"hunks,omitempty"`
	Marker         string      `json:"marker,omitempty"`
	HeaderTemplate string      `json:"headerTemplate,omitempty"`
	CommitID       string      `json:"commitId,omitempty"`
}

// RenderOutput is the result of the render tool.
type RenderOutput struct {
	Artifact string `json:"artifact"`
}
