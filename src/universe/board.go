package universe

import (
	"fmt"
	"sort"
	"strings"

	"patternlife/src/pattern"
)

type Cell bool

type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
}

//BoardOptions describes the board geometry and the generation engine
type BoardOptions struct {
	Size        int    //backing grid side
	VisibleSize int    //visible window side, 0 means Size
	Engine      string //generation engine name, empty means EngineSimple
	Workers     int    //workers of the multithreaded engine, 0 means DefWorkers
}

const (
	EngineSimple        = "simple"
	EngineSmallBuff     = "smallBuff"
	EngineMultithreaded = "multithreaded"
)

//engineFactory builds the nextIteration func of the board
//nextIteration computes the next generation of the whole backing grid
//from one snapshot, writes it back and returns the live cells count
type engineFactory func(b *Board, workers int) func() (liveCells int, changed bool)

var engines = map[string]engineFactory{
	EngineSimple:        newSimpleEngine,
	EngineSmallBuff:     newSmallBuffEngine,
	EngineMultithreaded: newMultithreadedEngine,
}

//Engines returns the sorted names of the available generation engines
func Engines() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Board is the Game of Life grid
//The backing grid is larger than or equal to the centered visible window,
//all public coordinates are visible window coordinates.
//Board is not safe for concurrent use.
type Board struct {
	size          int
	visibleSize   int
	offset        int
	engine        string
	area          Area
	nextIteration func() (liveCells int, changed bool)
}

//NewBoard creates the board with the simple engine
//visibleSize 0 means the whole backing grid is visible
func NewBoard(size int, visibleSize int) (*Board, error) {
	return NewBoardWithOptions(&BoardOptions{Size: size, VisibleSize: visibleSize})
}

//NewBoardWithOptions creates the board described by o
func NewBoardWithOptions(o *BoardOptions) (*Board, error) {
	visibleSize := o.VisibleSize
	if visibleSize == 0 {
		visibleSize = o.Size
	}
	engine := o.Engine
	if engine == "" {
		engine = EngineSimple
	}
	cfgErr := func(reason string) error {
		return &ConfigError{Size: o.Size, VisibleSize: o.VisibleSize, Engine: engine, Reason: reason}
	}
	if o.Size <= 0 {
		return nil, cfgErr("size must be positive")
	}
	if visibleSize < 0 {
		return nil, cfgErr("visible size must not be negative")
	}
	if visibleSize > o.Size {
		return nil, cfgErr("visible size must be less than or equal to size")
	}
	factory, ok := engines[engine]
	if !ok {
		return nil, cfgErr("unknown engine, use one of " + strings.Join(Engines(), ", "))
	}
	if o.Workers < 0 {
		return nil, cfgErr("workers must not be negative")
	}

	b := &Board{
		size:        o.Size,
		visibleSize: visibleSize,
		offset:      (o.Size - visibleSize) / 2,
		engine:      engine,
	}
	b.Clear()
	b.nextIteration = factory(b, o.Workers)
	return b, nil
}

//Size returns the backing grid side
func (b *Board) Size() int { return b.size }

//VisibleSize returns the visible window side
func (b *Board) VisibleSize() int { return b.visibleSize }

//Offset returns the position of the visible window inside the backing grid
func (b *Board) Offset() int { return b.offset }

//Engine returns the generation engine name
func (b *Board) Engine() string { return b.engine }

//Clear replaces the backing grid with an empty one
func (b *Board) Clear() {
	b.area = createArea(b.size, b.size)
}

//Toggle inverses the cell at x, y
func (b *Board) Toggle(x int, y int) error {
	if err := b.validateXY(x, y); err != nil {
		return err
	}
	x, y = x+b.offset, y+b.offset
	b.area.Entities[y][x] = !b.area.Entities[y][x]
	return nil
}

//Set makes the cell at x, y alive or dead
func (b *Board) Set(x int, y int, alive bool) error {
	if err := b.validateXY(x, y); err != nil {
		return err
	}
	b.area.Entities[y+b.offset][x+b.offset] = Cell(alive)
	return nil
}

//Alive reports whether the cell at x, y is alive
func (b *Board) Alive(x int, y int) (bool, error) {
	if err := b.validateXY(x, y); err != nil {
		return false, err
	}
	return b.isAlive(x+b.offset, y+b.offset), nil
}

//CopyBuffer stamps the pattern with its top-left corner at x, y
//The region is overwritten, dead pattern cells kill live board cells
func (b *Board) CopyBuffer(x int, y int, buf pattern.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("copying buffer: %w", err)
	}
	if !b.inside(x, y) || !b.inside(x+buf.Width-1, y+buf.Height-1) {
		return &BoundsError{X: x, Y: y, Width: buf.Width, Height: buf.Height, VisibleSize: b.visibleSize}
	}
	x, y = x+b.offset, y+b.offset
	for i, row := range buf.Cells {
		line := b.area.Entities[y+i][x : x+buf.Width]
		for j, c := range row {
			line[j] = Cell(c)
		}
	}
	return nil
}

//Generate computes the next generation of the whole backing grid
//It returns the number of live backing cells and whether any cell changed
func (b *Board) Generate() (liveCells int, changed bool) {
	return b.nextIteration()
}

//VisibleArea returns a copy of the visible window
func (b *Board) VisibleArea() Area {
	a := createArea(b.visibleSize, b.visibleSize)
	for y := range a.Entities {
		copy(a.Entities[y], b.area.Entities[y+b.offset][b.offset:b.offset+b.visibleSize])
	}
	return a
}

//LiveCells returns the number of live cells inside the visible window
func (b *Board) LiveCells() int {
	n := 0
	for y := b.offset; y < b.offset+b.visibleSize; y++ {
		for _, e := range b.area.Entities[y][b.offset : b.offset+b.visibleSize] {
			if e {
				n++
			}
		}
	}
	return n
}

//RenderText renders the visible window, 'O' for live and 'X' for dead cells
func (b *Board) RenderText() string {
	var sb strings.Builder
	sb.Grow((b.visibleSize + 1) * b.visibleSize)
	for _, l := range b.VisibleArea().Entities {
		for _, e := range l {
			if e {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('X')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) inside(x int, y int) bool {
	return x >= 0 && y >= 0 && x < b.visibleSize && y < b.visibleSize
}

func (b *Board) validateXY(x int, y int) error {
	if !b.inside(x, y) {
		return &BoundsError{X: x, Y: y, Width: 1, Height: 1, VisibleSize: b.visibleSize}
	}
	return nil
}

//isAlive reads the cell at backing coordinates
func (b *Board) isAlive(x int, y int) bool {
	return bool(b.area.Entities[y][x])
}

//liveNeighbours counts the live cells around x, y (backing coordinates)
//the neighbourhood is truncated at the backing grid edges
func (b *Board) liveNeighbours(x int, y int) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nx := x + i
			ny := y + j
			//skip coordinates outside the area
			if nx < 0 || ny < 0 || nx >= b.size || ny >= b.size {
				continue
			}
			if b.area.Entities[ny][nx] {
				n++
			}
		}
	}
	return n
}

//cellNextState calculates the next state for the cell
func (b *Board) cellNextState(x int, y int) bool {
	n := b.liveNeighbours(x, y)
	if b.isAlive(x, y) {
		return n == 2 || n == 3
	}
	return n == 3
}

//createArea allocate the new area backed by a single slice
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
