package pattern

import (
	"errors"
	"fmt"
)

//Errors reported by the decoders, always wrapped in a *FormatError
var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrMalformedRLE     = errors.New("malformed RLE pattern")
	ErrEmptyPattern     = errors.New("empty pattern")
	ErrUnknownEncoding  = errors.New("unknown pattern encoding")
	ErrInvalidBuffer    = errors.New("invalid pattern buffer")
)

//FormatError describes pattern text that violates the grammar of its encoding
type FormatError struct {
	Encoding Encoding
	Line     int    //1-based line of the offending text, 0 if not known
	Detail   string //optional human readable detail
	Err      error
}

func (e *FormatError) Error() string {
	msg := e.Err.Error()
	if e.Encoding != Unknown {
		msg = e.Encoding.String() + ": " + msg
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(enc Encoding, line int, err error, detail string, args ...interface{}) *FormatError {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &FormatError{Encoding: enc, Line: line, Detail: detail, Err: err}
}
