package universe

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"patternlife/src/pattern"
)

//forEachEngine runs the test against a fresh board of every engine
func forEachEngine(t *testing.T, size int, visibleSize int, test func(t *testing.T, b *Board)) {
	for _, e := range Engines() {
		t.Run(e, func(t *testing.T) {
			b, err := NewBoardWithOptions(&BoardOptions{Size: size, VisibleSize: visibleSize, Engine: e, Workers: 2})
			if err != nil {
				t.Fatalf("NewBoardWithOptions failed: %v", err)
			}
			test(t, b)
		})
	}
}

//settle makes the listed visible cells alive
func settle(t *testing.T, b *Board, cells [][2]int) {
	t.Helper()
	for _, c := range cells {
		if err := b.Set(c[0], c[1], true); err != nil {
			t.Fatalf("Set(%d, %d) failed: %v", c[0], c[1], err)
		}
	}
}

//expectAlive checks that exactly the listed visible cells are alive
func expectAlive(t *testing.T, b *Board, cells [][2]int) {
	t.Helper()
	want := map[[2]int]bool{}
	for _, c := range cells {
		want[c] = true
	}
	a := b.VisibleArea()
	for y := range a.Entities {
		for x, e := range a.Entities[y] {
			if bool(e) != want[[2]int{x, y}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v\n%s", x, y, e, want[[2]int{x, y}], b.RenderText())
			}
		}
	}
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		size, visible int
		wantVisible   int
		wantOffset    int
	}{
		{10, 10, 10, 0},
		{10, 0, 10, 0},
		{10, 6, 6, 2},
		{11, 6, 6, 2},
		{55, 50, 50, 2},
		{1, 1, 1, 0},
	}
	for _, tt := range tests {
		b, err := NewBoard(tt.size, tt.visible)
		if err != nil {
			t.Fatalf("NewBoard(%d, %d) failed: %v", tt.size, tt.visible, err)
		}
		if b.VisibleSize() != tt.wantVisible || b.Offset() != tt.wantOffset || b.Size() != tt.size {
			t.Errorf("NewBoard(%d, %d) = size %d, visible %d, offset %d; want visible %d, offset %d",
				tt.size, tt.visible, b.Size(), b.VisibleSize(), b.Offset(), tt.wantVisible, tt.wantOffset)
		}
		if b.Engine() != EngineSimple {
			t.Errorf("default engine = %q", b.Engine())
		}
	}
}

func TestNewBoardConfigErrors(t *testing.T) {
	tests := []BoardOptions{
		{Size: 5, VisibleSize: 6},
		{Size: 0},
		{Size: -3},
		{Size: 5, VisibleSize: -1},
		{Size: 5, Engine: "hashlife"},
		{Size: 5, Engine: EngineMultithreaded, Workers: -1},
	}
	for _, o := range tests {
		b, err := NewBoardWithOptions(&o)
		if b != nil {
			t.Errorf("%+v: board created", o)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) || !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%+v: err = %v, want *ConfigError", o, err)
		}
	}
}

func TestClear(t *testing.T) {
	for _, sizes := range [][2]int{{1, 1}, {5, 3}, {12, 12}, {20, 7}} {
		b, err := NewBoard(sizes[0], sizes[1])
		if err != nil {
			t.Fatal(err)
		}
		_ = b.Toggle(0, 0)
		b.Clear()
		b.Clear()
		a := b.VisibleArea()
		if a.Width != sizes[1] || a.Height != sizes[1] || len(a.Entities) != sizes[1] {
			t.Fatalf("visible area %dx%d, want %dx%d", a.Width, a.Height, sizes[1], sizes[1])
		}
		if b.LiveCells() != 0 {
			t.Errorf("%v: %d live cells after Clear", sizes, b.LiveCells())
		}
	}
}

func TestToggle(t *testing.T) {
	b, err := NewBoard(9, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Toggle(1, 3); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	expectAlive(t, b, [][2]int{{1, 3}})
	if !b.isAlive(1+b.Offset(), 3+b.Offset()) {
		t.Error("backing cell not translated by the offset")
	}
	if err := b.Toggle(1, 3); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	expectAlive(t, b, nil)
}

func TestOutOfBounds(t *testing.T) {
	b, err := NewBoard(9, 5)
	if err != nil {
		t.Fatal(err)
	}
	settle(t, b, [][2]int{{0, 0}, {4, 4}})
	before := b.VisibleArea()

	for _, c := range [][2]int{{5, 0}, {0, 5}, {5, 5}, {-1, 0}, {0, -1}, {100, 2}} {
		err := b.Toggle(c[0], c[1])
		var be *BoundsError
		if !errors.As(err, &be) || !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Toggle(%d, %d) err = %v, want *BoundsError", c[0], c[1], err)
		}
	}

	glider, err := pattern.ParseRunLengthEncoding("x = 3, y = 3\nbob$2bo$3o!")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range [][2]int{{3, 0}, {0, 3}, {5, 0}, {-1, 1}, {2, 3}} {
		if err := b.CopyBuffer(c[0], c[1], glider); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("CopyBuffer(%d, %d) err = %v, want %v", c[0], c[1], err, ErrOutOfBounds)
		}
	}
	if after := b.VisibleArea(); !reflect.DeepEqual(before, after) {
		t.Errorf("visible area changed by failed calls\n%s", b.RenderText())
	}
}

func TestCopyBuffer(t *testing.T) {
	b, err := NewBoard(7, 5)
	if err != nil {
		t.Fatal(err)
	}
	//everything alive, the stamp must kill the dead pattern cells
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			_ = b.Set(x, y, true)
		}
	}
	glider, err := pattern.ParsePlaintext(".O.\n..O\nOOO")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.CopyBuffer(2, 2, glider); err != nil {
		t.Fatalf("CopyBuffer at the bottom-right corner failed: %v", err)
	}
	want := "OOOOO\nOOOOO\nOOXOX\nOOXXO\nOOOOO\n"
	if got := b.RenderText(); got != want {
		t.Errorf("board\n%s\nwant\n%s", got, want)
	}
	//the padding outside the visible window is untouched
	if b.isAlive(0, 0) || b.isAlive(6, 6) {
		t.Error("stamp leaked outside the visible window")
	}
}

func TestCopyBufferInvalid(t *testing.T) {
	b, err := NewBoard(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	ragged := pattern.Buffer{Width: 2, Height: 2, Cells: [][]bool{{true, true}, {true}}}
	if err := b.CopyBuffer(0, 0, ragged); !errors.Is(err, pattern.ErrInvalidBuffer) {
		t.Errorf("err = %v, want %v", err, pattern.ErrInvalidBuffer)
	}
	if b.LiveCells() != 0 {
		t.Error("invalid buffer partially copied")
	}
}

func TestGenerateRules(t *testing.T) {
	tests := []struct {
		name   string
		cells  [][2]int
		probe  [2]int
		expect bool
	}{
		{"underpopulation lonely", [][2]int{{3, 3}}, [2]int{3, 3}, false},
		{"underpopulation one neighbour", [][2]int{{3, 3}, {4, 3}}, [2]int{3, 3}, false},
		{"survival two", [][2]int{{2, 2}, {3, 3}, {4, 4}}, [2]int{3, 3}, true},
		{"survival three", [][2]int{{2, 2}, {3, 3}, {4, 4}, {2, 4}}, [2]int{3, 3}, true},
		{"birth", [][2]int{{2, 2}, {4, 2}, {3, 4}}, [2]int{3, 3}, true},
		{"no birth with two", [][2]int{{2, 2}, {4, 2}}, [2]int{3, 3}, false},
		{"no birth with four", [][2]int{{2, 2}, {4, 2}, {2, 4}, {4, 4}}, [2]int{3, 3}, false},
		{"overpopulation", [][2]int{{3, 3}, {2, 2}, {4, 2}, {2, 4}, {4, 4}}, [2]int{3, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachEngine(t, 7, 7, func(t *testing.T, b *Board) {
				settle(t, b, tt.cells)
				b.Generate()
				alive, err := b.Alive(tt.probe[0], tt.probe[1])
				if err != nil {
					t.Fatal(err)
				}
				if alive != tt.expect {
					t.Errorf("cell %v alive=%v, expected %v\n%s", tt.probe, alive, tt.expect, b.RenderText())
				}
			})
		})
	}
}

func TestBlockIsStable(t *testing.T) {
	forEachEngine(t, 8, 6, func(t *testing.T, b *Board) {
		block := [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
		settle(t, b, block)
		for i := 0; i < 10; i++ {
			live, changed := b.Generate()
			if live != 4 || changed {
				t.Fatalf("generation %d: live=%d changed=%v", i, live, changed)
			}
		}
		expectAlive(t, b, block)
	})
}

func TestBlinkerOscillation(t *testing.T) {
	forEachEngine(t, 5, 5, func(t *testing.T, b *Board) {
		horizontal := [][2]int{{1, 2}, {2, 2}, {3, 2}}
		vertical := [][2]int{{2, 1}, {2, 2}, {2, 3}}
		settle(t, b, horizontal)

		_, changed := b.Generate()
		if !changed {
			t.Error("blinker reported unchanged")
		}
		expectAlive(t, b, vertical)

		b.Generate()
		expectAlive(t, b, horizontal)
	})
}

func TestBlinkerAtBackingEdge(t *testing.T) {
	//no wraparound: a blinker on the top edge loses the cell above it
	forEachEngine(t, 5, 5, func(t *testing.T, b *Board) {
		settle(t, b, [][2]int{{1, 0}, {2, 0}, {3, 0}})
		b.Generate()
		expectAlive(t, b, [][2]int{{2, 0}, {2, 1}})
	})
}

func TestGliderLeavesVisibleWindow(t *testing.T) {
	forEachEngine(t, 12, 6, func(t *testing.T, b *Board) {
		glider, err := pattern.ParseRunLengthEncoding("x = 3, y = 3\nbob$2bo$3o!")
		if err != nil {
			t.Fatal(err)
		}
		if err := b.CopyBuffer(3, 3, glider); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 8; i++ {
			b.Generate()
		}
		//two diagonal cells further, outside the window but still alive
		if b.LiveCells() == 5 {
			t.Fatalf("glider still fully visible\n%s", b.RenderText())
		}
		live, _ := b.Generate()
		if live != 5 {
			t.Errorf("backing grid holds %d live cells, want 5", live)
		}
	})
}

func TestEnginesAgree(t *testing.T) {
	const size = 40
	rnd := rand.New(rand.NewSource(42))
	var soup [][2]int
	for i := 0; i < size*size/3; i++ {
		soup = append(soup, [2]int{rnd.Intn(size), rnd.Intn(size)})
	}

	var boards []*Board
	for _, e := range Engines() {
		b, err := NewBoardWithOptions(&BoardOptions{Size: size, Engine: e, Workers: 7})
		if err != nil {
			t.Fatal(err)
		}
		settle(t, b, soup)
		boards = append(boards, b)
	}
	for gen := 0; gen < 30; gen++ {
		var want string
		for i, b := range boards {
			b.Generate()
			got := b.RenderText()
			if i == 0 {
				want = got
			} else if got != want {
				t.Fatalf("generation %d: %s differs from %s", gen, b.Engine(), boards[0].Engine())
			}
		}
	}
}

func TestVisibleAreaIsSnapshot(t *testing.T) {
	b, err := NewBoard(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	a := b.VisibleArea()
	a.Entities[1][1] = true
	if b.LiveCells() != 0 {
		t.Error("VisibleArea aliases the board")
	}
	_ = b.Toggle(1, 1)
	if a2 := b.VisibleArea(); !a2.Entities[1][1] {
		t.Error("VisibleArea does not reflect the current state")
	}
}

func TestSplitWorkAreas(t *testing.T) {
	tests := []struct {
		size, workers int
		bands         int
	}{
		{100, 10, 10},
		{100, 0, 10},
		{105, 10, 10},
		{10, 10, 4},
		{2, 4, 1},
	}
	for _, tt := range tests {
		was := splitWorkAreas(tt.size, tt.workers)
		if len(was) != tt.bands {
			t.Errorf("splitWorkAreas(%d, %d) = %d bands, want %d", tt.size, tt.workers, len(was), tt.bands)
		}
		next := 0
		for _, wa := range was {
			if wa.y1 != next || wa.x1 != 0 || wa.x2 != tt.size-1 {
				t.Fatalf("splitWorkAreas(%d, %d): band %+v does not continue at row %d", tt.size, tt.workers, wa, next)
			}
			next = wa.y2 + 1
		}
		if next != tt.size {
			t.Errorf("splitWorkAreas(%d, %d) covers %d rows", tt.size, tt.workers, next)
		}
	}
}
