package pattern

import "strings"

//Buffer is a decoded rectangular pattern ready to be stamped onto a board
//Cells holds Height rows of Width values each, true means alive
type Buffer struct {
	Width  int
	Height int
	Cells  [][]bool
}

//newBuffer allocates an all-dead buffer backed by a single slice
func newBuffer(width, height int) Buffer {
	b := Buffer{Width: width, Height: height, Cells: make([][]bool, height)}
	cells := make([]bool, width*height)
	for i := range b.Cells {
		start := width * i
		b.Cells[i] = cells[start : start+width : start+width]
	}
	return b
}

//Validate checks the shape of a hand-built buffer
func (b Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return formatError(Unknown, 0, ErrInvalidBuffer, "dimensions %dx%d", b.Width, b.Height)
	}
	if len(b.Cells) != b.Height {
		return formatError(Unknown, 0, ErrInvalidBuffer, "%d rows, want %d", len(b.Cells), b.Height)
	}
	for y, row := range b.Cells {
		if len(row) != b.Width {
			return formatError(Unknown, y+1, ErrInvalidBuffer, "row has %d cells, want %d", len(row), b.Width)
		}
	}
	return nil
}

//LiveCells returns the number of live cells in the buffer
func (b Buffer) LiveCells() int {
	n := 0
	for _, row := range b.Cells {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

//String renders the buffer in plaintext notation
func (b Buffer) String() string {
	var sb strings.Builder
	sb.Grow((b.Width + 1) * b.Height)
	for _, row := range b.Cells {
		for _, c := range row {
			if c {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
