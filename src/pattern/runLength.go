package pattern

import (
	"strconv"
	"strings"
	"unicode"
)

//MaxCells bounds the area a pattern header may declare
const MaxCells = 1 << 24

//ParseRunLengthEncoding decodes the RLE format
//
//The first non-comment line is the header ("x = 3, y = 3, rule = B3/S23"),
//the remaining lines form one token stream of optional run counts followed by
//'b' (dead), 'o' (alive), '$' (end of row) or the final '!'
//Every row closed by '$' must be exactly x cells long, the last row is padded
//A run count before '$' adds that many minus one blank rows
func ParseRunLengthEncoding(text string) (Buffer, error) {
	lines := splitLines(text, "#")
	if len(lines) == 0 {
		return Buffer{}, formatError(RLE, 0, ErrMalformedRLE, "missing header")
	}
	width, height, err := parseHeader(lines[0])
	if err != nil {
		return Buffer{}, err
	}

	var stream []rune
	var lineNums []int
	for _, l := range lines[1:] {
		for _, c := range l.text {
			if unicode.IsSpace(c) {
				continue
			}
			stream = append(stream, c)
			lineNums = append(lineNums, l.num)
		}
	}
	if len(stream) == 0 {
		return Buffer{}, formatError(RLE, 0, ErrMalformedRLE, "missing pattern body")
	}
	for i, c := range stream {
		if c == '!' && i != len(stream)-1 {
			return Buffer{}, formatError(RLE, lineNums[i], ErrMalformedRLE, "data after terminator")
		}
	}
	if stream[len(stream)-1] != '!' {
		return Buffer{}, formatError(RLE, lineNums[len(lineNums)-1], ErrMalformedRLE, "missing terminator")
	}

	d := rleDecoder{buf: newBuffer(width, height)}
	for i, c := range stream {
		if err := d.feed(c); err != nil {
			err.Line = lineNums[i]
			return Buffer{}, err
		}
	}
	if d.y != height {
		return Buffer{}, formatError(RLE, 0, ErrMalformedRLE, "%d rows, header says %d", d.y, height)
	}
	return d.buf, nil
}

//parseHeader reads the x and y fields of the header line
func parseHeader(l line) (width int, height int, err error) {
	for _, field := range strings.Split(l.text, ",") {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return 0, 0, formatError(RLE, l.num, ErrMalformedRLE, "bad header field %q", strings.TrimSpace(field))
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		switch key {
		case "x":
			width, err = strconv.Atoi(value)
		case "y":
			height, err = strconv.Atoi(value)
		default:
			//rule and anything else is not interpreted
			continue
		}
		if err != nil {
			return 0, 0, formatError(RLE, l.num, ErrMalformedRLE, "bad %s value %q", key, value)
		}
	}
	if width <= 0 || height <= 0 {
		return 0, 0, formatError(RLE, l.num, ErrMalformedRLE, "header needs positive x and y")
	}
	if width > MaxCells/height {
		return 0, 0, formatError(RLE, l.num, ErrMalformedRLE, "%dx%d exceeds %d cells", width, height, MaxCells)
	}
	return width, height, nil
}

//rleDecoder writes runs straight into a preallocated buffer
//x is the length of the row being assembled, y the number of closed rows
type rleDecoder struct {
	buf   Buffer
	count []rune
	x, y  int
}

//runLength consumes the pending run count, 1 when none was given
func (d *rleDecoder) runLength() (int, *FormatError) {
	if len(d.count) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(string(d.count))
	d.count = d.count[:0]
	if err != nil {
		return 0, formatError(RLE, 0, ErrMalformedRLE, "bad run count")
	}
	return n, nil
}

func (d *rleDecoder) feed(c rune) *FormatError {
	switch {
	case c >= '0' && c <= '9':
		d.count = append(d.count, c)
		return nil
	case c == 'b' || c == 'o':
		n, err := d.runLength()
		if err != nil {
			return err
		}
		if d.y >= d.buf.Height {
			return formatError(RLE, 0, ErrMalformedRLE, "more than %d rows", d.buf.Height)
		}
		if n > d.buf.Width-d.x {
			return formatError(RLE, 0, ErrMalformedRLE, "row %d longer than %d", d.y+1, d.buf.Width)
		}
		if c == 'o' {
			row := d.buf.Cells[d.y]
			for i := d.x; i < d.x+n; i++ {
				row[i] = true
			}
		}
		d.x += n
		return nil
	case c == '$':
		n, err := d.runLength()
		if err != nil {
			return err
		}
		if n == 0 {
			return formatError(RLE, 0, ErrMalformedRLE, "zero row count")
		}
		if d.x != d.buf.Width {
			return formatError(RLE, 0, ErrMalformedRLE, "row %d has %d cells, want %d", d.y+1, d.x, d.buf.Width)
		}
		if n > d.buf.Height-d.y {
			return formatError(RLE, 0, ErrMalformedRLE, "more than %d rows", d.buf.Height)
		}
		d.x = 0
		d.y += n
		return nil
	case c == '!':
		d.count = d.count[:0]
		if d.y >= d.buf.Height {
			return formatError(RLE, 0, ErrMalformedRLE, "more than %d rows", d.buf.Height)
		}
		//the last row is padded with dead cells, already zeroed
		d.x = 0
		d.y++
		return nil
	}
	return formatError(RLE, 0, ErrUnknownCharacter, "%q", c)
}
