package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"patternlife/src/universe"
)

//ConsoleOut is the non-interactive viewer
//it prints the configuration, the progress and the final visible area
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	every     int
	lastIter  int
}

//NewConsoleOut creates the viewer writing to stdout
func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, true)
}

//NewConsoleOutTo creates the viewer writing to w, colors switches the aurora colouring
func NewConsoleOutTo(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: 10, lastIter: -1}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.IterationNum == c.lastIter {
		return
	}
	if st.RunningMode == universe.RunningStateFinished {
		c.lastIter = st.IterationNum
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
		fmt.Fprint(c.w, c.u.RenderText())
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%c.every == 0 {
			c.lastIter = st.IterationNum
			fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	fmt.Fprintf(c.w, "  Dimension: %v x %v (backing %v x %v)\n", o.VisibleSize, o.VisibleSize, o.Size, o.Size)
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
