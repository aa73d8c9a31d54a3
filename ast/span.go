package ast

// Span is a half-open byte range in the source text.
type Span struct {
	Start uint32
	End   uint32
}

// Len returns the length of the span in bytes.
func (s Span) Len() uint32 { return s.End - s.Start }

// Language is the source language.
type Language uint8

const (
	JavaScript Language = iota
	TypeScript
	TypeScriptDefinition
)

// ModuleKind says whether the source is a script or a module.
type ModuleKind uint8

const (
	Script ModuleKind = iota
	Module
)

// SourceType describes how the source text was parsed.
type SourceType struct {
	Language   Language
	ModuleKind ModuleKind
	JSX        bool
}

// IsModule reports whether the source is an ES module.
func (s SourceType) IsModule() bool { return s.ModuleKind == Module }

// IsTypeScript reports whether the source is TypeScript.
func (s SourceType) IsTypeScript() bool { return s.Language != JavaScript }
