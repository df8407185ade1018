package model

// DeclKind is the tagged-union discriminant for a Declaration.
type DeclKind string

const (
	DeclFunction DeclKind = "function"
	DeclMethod   DeclKind = "method"
	DeclType     DeclKind = "type"
	DeclConstant DeclKind = "constant"
	DeclVariable DeclKind = "variable"
)

// TypeShape classifies the syntactic shape of a Type declaration.
type TypeShape string

const (
	TypeStruct    TypeShape = "struct"
	TypeInterface TypeShape = "interface"
	TypeAlias     TypeShape = "alias"
	TypeEnumLike  TypeShape = "enum-like"
)

// Param is a single function or method parameter.
type Param struct {
	Name string
	Type string
}

// Receiver decomposes a method's receiver binding. TypeName is normalized
// (a leading "*" is stripped) so it can be compared against Type.Name
// directly during symbol lookup.
type Receiver struct {
	Name     string
	TypeName string
	Pointer  bool
}

// Field is a struct field or interface method signature, recorded with its
// type as a string (no semantic type resolution is performed on it).
type Field struct {
	Name string
	Type string
}

// Declaration is one top-level (or, for Method, impl-nested) named construct
// extracted from a single source file. The kind-specific field groups below
// are populated according to Kind, with two overlaps: a Type with Shape
// alias records its underlying type in DeclaredType, and a TypeScript
// arrow-function constant extracted as a Function keeps its InitializerSpan.
type Declaration struct {
	Kind DeclKind

	// Identity.
	Name      string // the declared identifier
	Package   string // owning package/module name, from the file's payload
	File      string // absolute or repo-relative path of the owning file
	StartLine int    // 1-based, inclusive
	EndLine   int    // 1-based, inclusive
	Span      ByteRange

	// Function / Method.
	Params     []Param
	Results    []string
	Generics   []string
	BodySpan   ByteRange
	Receiver   *Receiver // non-nil only for Kind == DeclMethod

	// Type.
	Shape   TypeShape
	Fields  []Field // struct fields or interface method signatures

	// Constant / Variable.
	DeclaredType    string // may be empty if inferred
	InitializerSpan ByteRange
}

// ByteRange is a half-open byte span [Start, End) into a SourceFile's Text.
type ByteRange struct {
	Start uint
	End   uint
}

// QualifiedName returns "Package.Name", or for a method "Package.(Receiver).Name".
func (d Declaration) QualifiedName() string {
	if d.Kind == DeclMethod && d.Receiver != nil {
		return d.Package + ".(" + d.Receiver.TypeName + ")." + d.Name
	}
	return d.Package + "." + d.Name
}

// ImportAlias classifies how an import binds its package name.
type ImportAlias string

const (
	AliasNamed ImportAlias = "named" // import foo "path"
	AliasBlank ImportAlias = "blank" // import _ "path"
	AliasDot   ImportAlias = "dot"   // import . "path"
	AliasNone  ImportAlias = ""      // import "path"
)

// Import is one import declaration in a source file.
type Import struct {
	Path  string // raw import path as written
	Alias string // alias identifier, empty unless Kind == AliasNamed
	Kind  ImportAlias
}

// DeclarationPayload is the polymorphic, language-tagged bag of declarations
// extracted from one file by a language info extractor. It is purely
// structural: it never resolves an identifier against another file.
type DeclarationPayload struct {
	Language     Language
	PackageName  string
	Imports      []Import
	Declarations []Declaration
}
