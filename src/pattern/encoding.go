package pattern

import (
	"strings"
	"unicode"
)

//Encoding names a supported pattern text format
type Encoding int

const (
	Unknown Encoding = iota
	Plaintext
	RLE
)

func (e Encoding) String() string {
	switch e {
	case Plaintext:
		return "plaintext"
	case RLE:
		return "rle"
	}
	return "unknown"
}

//line is a source line together with its 1-based position in the source text
type line struct {
	num  int
	text string
}

//splitLines trims the text, splits it on the detected line ending
//and drops the lines beginning with the comment prefix
func splitLines(text string, comment string) []line {
	sep := "\n"
	if strings.Contains(text, "\r") {
		sep = "\r\n"
	}
	trimmed := strings.TrimSpace(text)
	//blank lines trimmed from the front still count
	skipped := strings.Count(text[:len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace))], "\n")
	raw := strings.Split(trimmed, sep)
	lines := make([]line, 0, len(raw))
	for i, l := range raw {
		if strings.HasPrefix(l, comment) {
			continue
		}
		lines = append(lines, line{num: skipped + i + 1, text: l})
	}
	return lines
}
