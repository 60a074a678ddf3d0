package linenumber

import (
	"sort"
	"unicode/utf8"
)

// Map converts byte offsets to and from (line number, column) pairs the way
// JavaScript counts them: lines end at "\n", "\r\n", "\r", U+2028 or U+2029,
// and columns count UTF-16 code units. Line numbers and columns are
// zero-based. The map is immutable once built.
type Map struct {
	ByteCount   int   // ByteCount is the number of bytes in the buffer
	LineOffsets []int // LineOffsets contains the byte offset of the first char of each line

	buf []byte
}

// NewMap creates a map for the given buffer. The buffer must not be modified
// while the map is in use.
func NewMap(buf []byte) *Map {
	m := Map{
		ByteCount:   len(buf),
		LineOffsets: []int{0},
		buf:         buf,
	}
	for i := 0; i < len(buf); i++ {
		switch c := buf[i]; {
		case c == '\n':
			m.LineOffsets = append(m.LineOffsets, i+1)
		case c == '\r':
			if i+1 < len(buf) && buf[i+1] == '\n' {
				i++
			}
			m.LineOffsets = append(m.LineOffsets, i+1)
		case c == 0xE2 && i+2 < len(buf) && buf[i+1] == 0x80 && (buf[i+2] == 0xA8 || buf[i+2] == 0xA9):
			// U+2028 and U+2029
			i += 2
			m.LineOffsets = append(m.LineOffsets, i+1)
		}
	}
	return &m
}

// Offset converts a line number and UTF-16 column (both zero-based) to a byte
// offset. Columns past the end of the line are clamped to it.
func (m *Map) Offset(line, column int) int {
	begin, end := m.LineBounds(line)
	offset := begin
	for column > 0 && offset < end {
		r, w := utf8.DecodeRune(m.buf[offset:end])
		offset += w
		column -= utf16Len(r)
	}
	return offset
}

// LineCol converts a byte offset to a line number and UTF-16 column (both
// zero based). Offsets past the end of the buffer are clamped to it.
func (m *Map) LineCol(offset int) (line, column int) {
	if offset > m.ByteCount {
		offset = m.ByteCount
	}
	line = sort.Search(len(m.LineOffsets)-1, func(i int) bool { return offset < m.LineOffsets[i+1] })
	for i := m.LineOffsets[line]; i < offset; {
		r, w := utf8.DecodeRune(m.buf[i:offset])
		i += w
		column += utf16Len(r)
	}
	return line, column
}

// Column gets the zero-based column for a byte offset
func (m *Map) Column(offset int) int {
	_, col := m.LineCol(offset)
	return col
}

// Line gets the zero-based line number for a byte offset
func (m *Map) Line(offset int) int {
	line, _ := m.LineCol(offset)
	return line
}

// LineBounds gets the begin and end of the given line number, such that buf[begin:end] will
// contain the complete contents of the line without its terminator.
func (m *Map) LineBounds(line int) (begin, end int) {
	begin = m.LineOffsets[line]
	end = m.ByteCount
	if line+1 < len(m.LineOffsets) {
		end = m.LineOffsets[line+1]
		switch {
		case end >= 2 && m.buf[end-2] == '\r' && m.buf[end-1] == '\n':
			end -= 2
		case m.buf[end-1] == '\n' || m.buf[end-1] == '\r':
			end--
		default:
			end -= 3
		}
	}
	return
}

// LineCount gets the number of lines (equal to the number of line terminators plus one)
func (m *Map) LineCount() int {
	return len(m.LineOffsets)
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
