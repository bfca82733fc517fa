package pattern

//ParsePlaintext decodes the plaintext (.cells) format
//'O' is a live cell, '.' a dead one, lines starting with '!' are comments
//Lines shorter than the longest one are padded with dead cells
func ParsePlaintext(text string) (Buffer, error) {
	lines := splitLines(text, "!")

	width := 0
	for _, l := range lines {
		for i, c := range l.text {
			if c != '.' && c != 'O' {
				return Buffer{}, formatError(Plaintext, l.num, ErrUnknownCharacter, "%q at column %d", c, i+1)
			}
		}
		if len(l.text) > width {
			width = len(l.text)
		}
	}
	if len(lines) == 0 || width == 0 {
		return Buffer{}, formatError(Plaintext, 0, ErrEmptyPattern, "")
	}

	b := newBuffer(width, len(lines))
	for y, l := range lines {
		for x := 0; x < len(l.text); x++ {
			b.Cells[y][x] = l.text[x] == 'O'
		}
	}
	return b, nil
}
