// Package model defines the data types shared across the slicing pipeline:
// language tags, the source-file model, declaration payloads, hunks, and the
// resolved semantic context.
package model

// Language identifies a supported source language. Suffix lookup is total
// over the values below: every extension in Extensions maps back to exactly
// one Language.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
)

// languageInfo carries the display name and recognized file suffixes for a
// Language. Order in Extensions matters only for documentation purposes;
// lookup is by exact suffix match.
type languageInfo struct {
	DisplayName string
	Extensions  []string
}

var registry = map[Language]languageInfo{
	LangGo:         {DisplayName: "Go", Extensions: []string{".go"}},
	LangPython:     {DisplayName: "Python", Extensions: []string{".py"}},
	LangRust:       {DisplayName: "Rust", Extensions: []string{".rs"}},
	LangTypeScript: {DisplayName: "TypeScript", Extensions: []string{".ts", ".tsx"}},
}

// extByLanguage is built once at init time from registry, giving a total
// suffix -> Language lookup.
var extByLanguage = func() map[string]Language {
	m := make(map[string]Language)
	for lang, info := range registry {
		for _, ext := range info.Extensions {
			m[ext] = lang
		}
	}
	return m
}()

// DisplayName returns the human-readable name of the language, or "" if l
// is not a recognized tag.
func (l Language) DisplayName() string {
	return registry[l].DisplayName
}

// Extensions returns the ordered, nonempty list of file suffixes recognized
// for this language, or nil if l is not a recognized tag.
func (l Language) Extensions() []string {
	return registry[l].Extensions
}

// Known reports whether l is a registered language tag.
func (l Language) Known() bool {
	_, ok := registry[l]
	return ok
}

// LanguageForExtension returns the language tag registered for a file
// extension (including the leading dot), and whether one was found.
func LanguageForExtension(ext string) (Language, bool) {
	lang, ok := extByLanguage[ext]
	return lang, ok
}

// AllLanguages returns every registered language tag, in a fixed order.
func AllLanguages() []Language {
	return []Language{LangGo, LangPython, LangRust, LangTypeScript}
}
