package universe

import "patternlife/src/pattern"

//Universe is the simulation runtime around one Board
//Run, Stop, Step, Clear and SettleWithRandomData return immediately,
//the result is reported over StateCh and to the registered viewers
type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	RenderText() string
	StateCh() chan Status
	Templates() *pattern.Library
	AddTemplate(name string, b pattern.Buffer) error
	SettleTemplate(name string, x int, y int) error
	Stamp(x int, y int, b pattern.Buffer) error
	SettleWithRandomData()
	InverseCell(x int, y int) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
