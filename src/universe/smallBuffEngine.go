package universe

/*
	Engine with buffers optimization
	it uses small buffer to store the current and previous lines only.
	the previous line is copied to the board once the current one is calculated,
	so every calculation still reads the previous generation
*/
func newSmallBuffEngine(b *Board, _ int) func() (int, bool) {
	tmpBuff := createArea(b.size, 2)
	return func() (liveCells int, changed bool) {
		for y := range b.area.Entities {
			for x := range b.area.Entities[y] {
				nextState := b.cellNextState(x, y)
				if nextState {
					liveCells++
				}
				changed = changed || nextState != bool(b.area.Entities[y][x])
				tmpBuff.Entities[1][x] = Cell(nextState)
			}
			if y-1 >= 0 {
				copy(b.area.Entities[y-1], tmpBuff.Entities[0])
			}
			tmpBuff.Entities[0], tmpBuff.Entities[1] = tmpBuff.Entities[1], tmpBuff.Entities[0]
		}
		copy(b.area.Entities[b.size-1], tmpBuff.Entities[0])
		return
	}
}
