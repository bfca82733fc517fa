package universe

/*
	Simple engine with two buffers
	All cells state is calculated to the temporary buffer and then this buffer data is copied to the board
*/
func newSimpleEngine(b *Board, _ int) func() (int, bool) {
	tmpBuff := createArea(b.size, b.size)
	return func() (liveCells int, changed bool) {
		for y := range b.area.Entities {
			for x := range b.area.Entities[y] {
				nextState := b.cellNextState(x, y)
				if nextState {
					liveCells++
				}
				changed = changed || nextState != bool(b.area.Entities[y][x])
				tmpBuff.Entities[y][x] = Cell(nextState)
			}
		}
		for y := range b.area.Entities {
			copy(b.area.Entities[y], tmpBuff.Entities[y])
		}
		return
	}
}
