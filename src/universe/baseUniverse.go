package universe

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"patternlife/src/pattern"
)

//Options represents the Universe's configurable options
type Options struct {
	Size            int //backing grid side
	VisibleSize     int //visible window side
	Engine          string
	Workers         int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            int64                  //random settling seed, 0 means time based
	Advanced        map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{} //advanced details (engine specific)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefVisibleSize        = 50
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

var DefaultUniverseOptions = Options{
	Size:            PaddedSize(DefVisibleSize),
	VisibleSize:     DefVisibleSize,
	Engine:          EngineSimple,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//PaddedSize returns the backing grid side for the visible side
//the backing grid is 10% larger so organisms can leave the visible window
func PaddedSize(visibleSize int) int {
	return visibleSize * 11 / 10
}

//BaseUniverse is the universe's runtime
//implements Universe interface
//it owns one Board and serializes every access to it
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	board struct {
		*Board
		sync.Mutex
	}
	rnd       *rand.Rand
	stateCh   chan Status
	views     []Viewer
	templates *pattern.Library
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
}

//NewBaseUniverse creates the BaseUniverse instance and starts its main loop
//stateCh may be nil when nobody listens to the status updates
func NewBaseUniverse(o *Options, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	b, err := NewBoardWithOptions(&BoardOptions{
		Size:        opts.Size,
		VisibleSize: opts.VisibleSize,
		Engine:      opts.Engine,
		Workers:     opts.Workers,
	})
	if err != nil {
		return nil, err
	}
	opts.VisibleSize = b.VisibleSize()
	opts.Engine = b.Engine()
	opts.Advanced = map[string]interface{}{"engine": b.Engine()}
	for k, v := range o.Advanced {
		opts.Advanced[k] = v
	}
	if b.Engine() == EngineMultithreaded {
		opts.Advanced["Workers"] = len(splitWorkAreas(b.Size(), opts.Workers))
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	u := BaseUniverse{
		options:   opts,
		rnd:       rand.New(rand.NewSource(seed)),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: pattern.NewLibrary(),
	}
	u.board.Board = b
	u.state.Details = make(map[string]interface{})

	go u.mainLoop()
	return &u, nil
}

//Templates returns the library of patterns the universe can be settled with
func (u *BaseUniverse) Templates() *pattern.Library {
	return u.templates
}

//AddTemplate adds the seeding pattern to the template library
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(name string, b pattern.Buffer) error {
	return u.templates.Add(name, b)
}

//SettleTemplate stamps the named template with its top-left corner at x, y
func (u *BaseUniverse) SettleTemplate(name string, x int, y int) error {
	tmpl, ok := u.templates.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return u.Stamp(x, y, tmpl)
}

//Stamp copies the pattern buffer to the board with its top-left corner at x, y
func (u *BaseUniverse) Stamp(x int, y int, b pattern.Buffer) error {
	u.board.Lock()
	err := u.board.CopyBuffer(x, y, b)
	u.board.Unlock()
	if err != nil {
		return err
	}
	u.updateLiveCells()
	u.refreshView()
	return nil
}

//SettleWithRandomData populates the visible area with random data
func (u *BaseUniverse) SettleWithRandomData() {
	mode := u.runningMode()
	if mode == RunningStateManual || mode == RunningStateFinished {
		u.exec(u.clear)
		u.exec(func() {
			u.board.Lock()
			vs := u.board.VisibleSize()
			for i := 0; i < vs*vs; i++ {
				_ = u.board.Set(u.rnd.Intn(vs), u.rnd.Intn(vs), true)
			}
			u.board.Unlock()
			u.updateLiveCells()
			u.refreshView()
		})
	}
}

//InverseCell inverses the cell state at point x, y of the visible area
func (u *BaseUniverse) InverseCell(x int, y int) error {
	u.board.Lock()
	err := u.board.Toggle(x, y)
	u.board.Unlock()
	if err != nil {
		return err
	}
	u.updateLiveCells()
	u.refreshView()
	return nil
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	st := u.state.Status
	st.Details = make(map[string]interface{}, len(u.state.Details))
	for k, v := range u.state.Details {
		st.Details[k] = v
	}
	return st
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Area returns a snapshot of the visible area
func (u *BaseUniverse) Area() Area {
	u.board.Lock()
	defer u.board.Unlock()
	return u.board.VisibleArea()
}

//RenderText returns the visible area as text
func (u *BaseUniverse) RenderText() string {
	u.board.Lock()
	defer u.board.Unlock()
	return u.board.RenderText()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.exec(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.exec(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.exec(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.exec(u.clear)
}

//Close stops the main loop, returns immediately
//commands sent after Close are dropped
func (u *BaseUniverse) Close() {
	select {
	case u.closeCh <- true:
	default:
	}
}

//exec sends the command to the main loop unless the universe is closed
func (u *BaseUniverse) exec(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.done:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	defer close(u.done)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

func (u *BaseUniverse) runningMode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//updateLiveCells refreshes the live cells counter of the status
func (u *BaseUniverse) updateLiveCells() {
	u.board.Lock()
	n := u.board.LiveCells()
	u.board.Unlock()
	u.state.Lock()
	u.state.LiveCells = n
	u.state.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.setRunningMode(to)
	u.publishState()
}

func (u *BaseUniverse) setRunningMode(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	u.state.Unlock()
}

//publishState writes the current status to the stateCh
func (u *BaseUniverse) publishState() {
	if u.stateCh != nil {
		u.stateCh <- u.Status()
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	u.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool, 1)
		for {
			mode := u.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				u.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				select {
				case u.controlCh <- func() {
					u.step()
					done <- true
				}:
				case <-u.done:
					return
				}
				select {
				case <-done:
				case <-u.done:
					return
				}
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.runningMode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (u *BaseUniverse) step() {
	rm := u.runningMode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	u.board.Lock()
	liveCells, changed := u.board.Generate()
	visibleLive := u.board.LiveCells()
	u.board.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = visibleLive
	u.state.IterationTime = time.Since(start)
	u.state.Details["Backing live cells"] = liveCells
	iter := u.state.IterationNum
	u.state.Unlock()

	finished := liveCells == 0 || !changed ||
		(u.options.MaxSteps != 0 && iter >= u.options.MaxSteps)
	if finished {
		rm = RunningStateFinished
	}
	//viewers see the final state before the listeners of stateCh
	u.setRunningMode(rm)
	u.refreshView()
	u.publishState()
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.board.Lock()
	u.board.Clear()
	u.board.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.IterationTime = 0
	u.state.Details = make(map[string]interface{})
	u.state.Unlock()
	u.setRunningMode(RunningStateManual)
	u.refreshView()
	u.publishState()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
