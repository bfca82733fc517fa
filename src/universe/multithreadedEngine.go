package universe

import "golang.org/x/sync/errgroup"

/*
	Engine with multithreaded computation algorithm
	the grid is splitted into the row bands each of which is computed by individual goroutine,
	the bands are written back to the board when all of them are done
*/

const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

//workArea describe the working area for the worker
type workArea struct {
	x1        int
	y1        int
	x2        int
	y2        int
	tmpBuff   Area
	liveCells int
	changed   bool
}

//newWorkArea creates new work area
func newWorkArea(x1 int, y1 int, x2 int, y2 int) workArea {
	return workArea{
		x1:      x1,
		y1:      y1,
		x2:      x2,
		y2:      y2,
		tmpBuff: createArea(x2-x1+1, y2-y1+1),
	}
}

//splitWorkAreas splits size rows into bands for at most workers goroutines
func splitWorkAreas(size int, workers int) []workArea {
	if workers <= 0 {
		workers = DefWorkers
	}
	linesPerWorker := size / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < size {
		linesPerWorker++
	}
	workAreas := make([]workArea, 0, workers)
	for y1 := 0; y1 < size; y1 += linesPerWorker {
		y2 := y1 + linesPerWorker - 1
		if y2 > size-1 {
			y2 = size - 1
		}
		workAreas = append(workAreas, newWorkArea(0, y1, size-1, y2))
	}
	return workAreas
}

func newMultithreadedEngine(b *Board, workers int) func() (int, bool) {
	workAreas := splitWorkAreas(b.size, workers)
	return func() (liveCells int, changed bool) {
		var g errgroup.Group
		for i := range workAreas {
			wa := &workAreas[i]
			g.Go(func() error {
				b.calcArea(wa)
				return nil
			})
		}
		_ = g.Wait()
		for i := range workAreas {
			b.writeArea(&workAreas[i])
			liveCells += workAreas[i].liveCells
			changed = changed || workAreas[i].changed
		}
		return
	}
}

//writeArea writes workArea buffer to the board
func (b *Board) writeArea(wa *workArea) {
	for y := range wa.tmpBuff.Entities {
		copy(b.area.Entities[wa.y1+y][wa.x1:wa.x2+1], wa.tmpBuff.Entities[y])
	}
}

//calcArea calculates new states for the cells inside workArea
func (b *Board) calcArea(wa *workArea) {
	wa.liveCells = 0
	wa.changed = false
	for y := wa.y1; y <= wa.y2; y++ {
		for x := wa.x1; x <= wa.x2; x++ {
			nextState := b.cellNextState(x, y)
			if nextState {
				wa.liveCells++
			}
			wa.changed = wa.changed || nextState != bool(b.area.Entities[y][x])
			wa.tmpBuff.Entities[y-wa.y1][x-wa.x1] = Cell(nextState)
		}
	}
}
