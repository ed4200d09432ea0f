// Package diag names the four diagnostic kinds a Mini-Lang pipeline stage
// can report (spec §7) and the common shape every stage's error type
// implements, so a driver can report any of them uniformly without caring
// which phase produced it.
package diag

// Kind identifies which pipeline stage raised a Diagnostic.
type Kind string

const (
	Lexical   Kind = "Lexical"
	Syntactic Kind = "Syntactic"
	Semantic  Kind = "Semantic"
	Runtime   Kind = "Runtime"
)

// Diagnostic is satisfied by every stage's error type (lexer.Error,
// parser.ParseError, semantic.Error, interp.Error): each already formats
// itself as "<kind> error at line L, column C: <message>"; Kind lets a
// caller branch on which stage failed (e.g. to pick an exit code) without
// a type switch over four concrete types.
type Diagnostic interface {
	error
	Kind() Kind
}
