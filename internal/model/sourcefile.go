package model

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// SourceFile is the durable, immutable record of one parsed file. It is
// constructed once per run and shared read-only by every downstream stage.
//
// Invariant: byte offsets on any node obtained by walking Tree index into
// Text. The Tree's lifetime is tied to Text; callers must not retain Tree
// past the lifetime of the SourceFile that owns it.
type SourceFile struct {
	Path     string
	Text     []byte
	Tree     *tree_sitter.Tree
	Language Language
	Payload  DeclarationPayload
}

// Close releases the underlying parse tree. Safe to call once per
// SourceFile; calling it invalidates every Node obtained from Tree.
func (f *SourceFile) Close() {
	if f.Tree != nil {
		f.Tree.Close()
		f.Tree = nil
	}
}

// TextAt returns the substring of the file's source text given by a byte
// range. Total as long as r came from a node parsed from f.Text.
func (f *SourceFile) TextAt(r ByteRange) string {
	if int(r.End) > len(f.Text) || r.Start > r.End {
		return ""
	}
	return string(f.Text[r.Start:r.End])
}

// LineAt returns the 1-based line's text, or "" if line is out of range.
func (f *SourceFile) LineAt(line int) string {
	lines := f.Lines()
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Lines splits the file's text into lines without trailing newlines.
func (f *SourceFile) Lines() []string {
	return splitLines(f.Text)
}

func splitLines(text []byte) []string {
	if len(text) == 0 {
		return nil
	}
	var lines []string
	start := 0
	for i, b := range text {
		if b == '\n' {
			end := i
			if end > start && text[end-1] == '\r' {
				end--
			}
			lines = append(lines, string(text[start:end]))
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, string(text[start:]))
	}
	return lines
}
