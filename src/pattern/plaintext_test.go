package pattern

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePlaintext(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		width  int
		height int
		cells  [][]bool
	}{
		{
			name:   "comment dropped",
			text:   ".O.\nO.O\n!ignored\n",
			width:  3,
			height: 2,
			cells:  [][]bool{{false, true, false}, {true, false, true}},
		},
		{
			name:   "crlf",
			text:   "!Name: Blinker\r\nOOO\r\n",
			width:  3,
			height: 1,
			cells:  [][]bool{{true, true, true}},
		},
		{
			name:   "short lines padded",
			text:   "O\n..O\n.O",
			width:  3,
			height: 3,
			cells:  [][]bool{{true, false, false}, {false, false, true}, {false, true, false}},
		},
		{
			name:   "surrounding whitespace trimmed",
			text:   "\n\n  OO\nOO  \n\n",
			width:  2,
			height: 2,
			cells:  [][]bool{{true, true}, {true, true}},
		},
		{
			name:   "empty line is a dead row",
			text:   "O\n\nO",
			width:  1,
			height: 3,
			cells:  [][]bool{{true}, {false}, {true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParsePlaintext(tt.text)
			if err != nil {
				t.Fatalf("ParsePlaintext failed: %v", err)
			}
			if b.Width != tt.width || b.Height != tt.height {
				t.Fatalf("size = %dx%d, want %dx%d", b.Width, b.Height, tt.width, tt.height)
			}
			if !reflect.DeepEqual(b.Cells, tt.cells) {
				t.Errorf("cells = %v, want %v", b.Cells, tt.cells)
			}
			if err := b.Validate(); err != nil {
				t.Errorf("decoded buffer is invalid: %v", err)
			}
		})
	}
}

func TestParsePlaintextErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
		line int
	}{
		{"lowercase o", ".o.", ErrUnknownCharacter, 1},
		{"star", ".O.\n*O.", ErrUnknownCharacter, 2},
		{"after blank lines", "\n\n.O.\n*O.", ErrUnknownCharacter, 4},
		{"after crlf blank lines", "\r\n\r\n.O.\r\n*O.", ErrUnknownCharacter, 4},
		{"empty", "", ErrEmptyPattern, 0},
		{"only comments", "!Name: nothing\n!more", ErrEmptyPattern, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParsePlaintext(tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("err is %T, want *FormatError", err)
			}
			if fe.Line != tt.line {
				t.Errorf("line = %d, want %d", fe.Line, tt.line)
			}
			if b.Cells != nil {
				t.Errorf("partial buffer returned: %v", b)
			}
		})
	}
}

func TestParsePlaintextIsPure(t *testing.T) {
	text := "!Name: Acorn\n.O.....\n...O...\nOO..OOO"
	first, err := ParsePlaintext(text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		next, err := ParsePlaintext(text)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d decoded %v, want %v", i, next, first)
		}
	}
}
