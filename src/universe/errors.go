package universe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig    = errors.New("invalid board configuration")
	ErrOutOfBounds      = errors.New("out of visible area bounds")
	ErrTemplateNotFound = errors.New("template not found")
)

//ConfigError is returned when a board can't be built from the given parameters
type ConfigError struct {
	Size        int
	VisibleSize int
	Engine      string
	Reason      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v (size %d, visible size %d, engine %q): %s", ErrInvalidConfig, e.Size, e.VisibleSize, e.Engine, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

//BoundsError is returned when a cell or a pattern rectangle doesn't fit the visible area
//the board is left untouched
type BoundsError struct {
	X, Y          int
	Width, Height int
	VisibleSize   int
}

func (e *BoundsError) Error() string {
	if e.Width == 1 && e.Height == 1 {
		return fmt.Sprintf("cell (%d, %d) is %v [0, %d)", e.X, e.Y, ErrOutOfBounds, e.VisibleSize)
	}
	return fmt.Sprintf("pattern %dx%d at (%d, %d) is %v [0, %d)", e.Width, e.Height, e.X, e.Y, ErrOutOfBounds, e.VisibleSize)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
