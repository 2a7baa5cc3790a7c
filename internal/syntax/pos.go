// Package syntax holds the source positions attached to IR values.
package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos represents a position in a source file.
// The zero value is an invalid position.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number (byte offset in line)
}

// NoPos is the zero (invalid) position.
var NoPos Pos

// NewPos creates a new Pos with the given filename, line, and column.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// ParsePos parses "file:line:col", "file:line" or "line:col".
// The empty string yields NoPos.
func ParsePos(s string) (Pos, error) {
	if s == "" {
		return NoPos, nil
	}
	parts := strings.Split(s, ":")
	nums := make([]uint32, 0, 2)
	// Consume trailing numeric components (at most two); the rest is the file.
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.ParseUint(parts[len(parts)-1], 10, 32)
		if err != nil {
			break
		}
		nums = append([]uint32{uint32(n)}, nums...)
		parts = parts[:len(parts)-1]
	}
	file := strings.Join(parts, ":")
	if len(nums) == 0 {
		return NoPos, fmt.Errorf("invalid position %q: missing line number", s)
	}
	if len(nums) == 1 {
		if _, err := strconv.ParseUint(file, 10, 32); err == nil {
			// "line:col" without a file name.
			line, _ := strconv.ParseUint(file, 10, 32)
			return NewPos("", uint32(line), nums[0]), nil
		}
		return NewPos(file, nums[0], 0), nil
	}
	return NewPos(file, nums[0], nums[1]), nil
}

// String returns a string representation of the position in the format
// "filename:line:col" or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number (byte offset in line).
func (p Pos) Col() uint32 {
	return p.col
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// Before reports whether p sorts before q (file, then line, then column).
func (p Pos) Before(q Pos) bool {
	if p.filename != q.filename {
		return p.filename < q.filename
	}
	if p.line != q.line {
		return p.line < q.line
	}
	return p.col < q.col
}
