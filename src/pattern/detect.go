package pattern

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//Detect guesses the encoding of pattern text
//Comment lines of both formats are ignored, then an "x = ..." header or a
//'$' marks RLE and a body made only of '.' and 'O' marks plaintext
func Detect(text string) (Encoding, error) {
	var body []string
	for _, l := range splitLines(text, "#") {
		if !strings.HasPrefix(l.text, "!") {
			body = append(body, l.text)
		}
	}
	if len(body) == 0 {
		return Unknown, formatError(Unknown, 0, ErrEmptyPattern, "")
	}
	if isRLEHeader(body[0]) {
		return RLE, nil
	}
	plain := true
	for _, l := range body {
		if strings.Contains(l, "$") {
			return RLE, nil
		}
		if strings.Trim(l, ".O") != "" {
			plain = false
		}
	}
	if plain {
		return Plaintext, nil
	}
	return Unknown, formatError(Unknown, 0, ErrUnknownEncoding, "")
}

func isRLEHeader(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "x") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(s[1:]), "=")
}

//Parse detects the encoding of the text and decodes it
func Parse(text string) (Buffer, error) {
	enc, err := Detect(text)
	if err != nil {
		return Buffer{}, err
	}
	return Decode(enc, text)
}

//Decode decodes text with the decoder of the given encoding
func Decode(enc Encoding, text string) (Buffer, error) {
	switch enc {
	case Plaintext:
		return ParsePlaintext(text)
	case RLE:
		return ParseRunLengthEncoding(text)
	}
	return Buffer{}, formatError(enc, 0, ErrUnknownEncoding, "")
}

//EncodingForPath maps the conventional file extensions to an encoding
func EncodingForPath(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cells", ".txt":
		return Plaintext
	case ".rle":
		return RLE
	}
	return Unknown
}

//Load reads and decodes a pattern file
//The extension picks the decoder, the content is sniffed otherwise
func Load(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("opening pattern %s: %w", path, err)
	}
	defer f.Close()
	b, err := LoadFromReader(f, EncodingForPath(path))
	if err != nil {
		return Buffer{}, fmt.Errorf("loading pattern %s: %w", path, err)
	}
	return b, nil
}

//LoadFromReader decodes pattern text read from r, sniffing it when enc is Unknown
func LoadFromReader(r io.Reader, enc Encoding) (Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Buffer{}, fmt.Errorf("reading pattern: %w", err)
	}
	if enc == Unknown {
		return Parse(string(data))
	}
	return Decode(enc, string(data))
}
