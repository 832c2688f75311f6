// Package locator resolves source spans to source text and normalizes
// source bytes before any offset into them is computed.
package locator

import (
	"bytes"

	"golang.org/x/text/unicode/norm"

	"github.com/sunholo/semcheck/internal/ast"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 byte order mark and applies Unicode NFC
// normalization, so that a Locator's byte offsets are stable regardless
// of how the source was encoded on disk.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}

// Locator maps 1-based line/column positions to byte offsets in a
// source buffer. Columns are raw byte offsets from the start of their
// line, not rune counts.
type Locator struct {
	source []byte
	lines  []int // lines[i] is the byte offset of the start of line i+1
}

// New builds a Locator over src. src should already be Normalize'd.
func New(src []byte) *Locator {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Locator{source: src, lines: lines}
}

// lineOffset returns the byte offset of the start of the given 1-based
// line number. It panics if line is out of range, mirroring the
// upstream locator's "line not found" expectation: a SourceLocation
// produced against this Locator's own source never refers to a line
// that doesn't exist.
func (l *Locator) lineOffset(line int) int {
	if line < 1 || line > len(l.lines) {
		panic("locator: line not found")
	}
	return l.lines[line-1]
}

// GetSrc returns the source text spanned by loc, or false if a column
// offset falls outside the buffer. A line number outside the buffer
// panics (see lineOffset).
func (l *Locator) GetSrc(loc ast.SourceLocation) (string, bool) {
	start := l.lineOffset(loc.Start.Line) + loc.Start.Column - 1
	end := l.lineOffset(loc.End.Line) + loc.End.Column - 1
	if start < 0 || end > len(l.source) || start > end {
		return "", false
	}
	return string(l.source[start:end]), true
}
