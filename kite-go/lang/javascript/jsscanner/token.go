package jsscanner

import "fmt"

// Position is a location in the source. Lines are 1-based, columns are
// 0-based and counted in UTF-16 code units so they line up with what
// browsers report in stack traces and source maps. Offset is the byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token or comment.
//
// Value holds the identifier or keyword word, the raw text of numbers,
// regular expressions and template chunks, the decoded contents of string
// literals, the name of a private identifier without its '#', and the text
// of a comment without its delimiters. It is empty for punctuation.
type Token struct {
	Type  *Type
	Value string
	Start Position
	End   Position
}

// IsComment returns true if the token is a line comment, block comment or hashbang.
func (t Token) IsComment() bool {
	return t.Type == LineComment || t.Type == BlockComment || t.Type == Hashbang
}

func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("%s %q", t.Start, t.Type.Label)
	}
	return fmt.Sprintf("%s %s %q", t.Start, t.Type.Label, t.Value)
}

// PosError is a lexical error at a position in the source.
type PosError struct {
	Pos Position
	Msg string
}

// Error implements the error interface
func (e PosError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}
