package pattern

import (
	"fmt"
	"sort"
	"sync"
)

//builtinPatterns are well known shapes, mostly taken from the LifeWiki pattern collection
var builtinPatterns = []struct {
	name string
	text string
}{
	{"block", "x = 2, y = 2, rule = B3/S23\n2o$2o!"},
	{"beehive", "!Name: Beehive\n.OO.\nO..O\n.OO."},
	{"blinker", "x = 3, y = 1, rule = B3/S23\n3o!"},
	{"toad", "#N Toad\nx = 4, y = 2, rule = B3/S23\nb3o$3ob!"},
	{"beacon", "#N Beacon\nx = 4, y = 4, rule = B3/S23\n2o2b$2o2b$2b2o$2b2o!"},
	{"glider", "#N Glider\nx = 3, y = 3, rule = B3/S23\nbob$2bo$3o!"},
	{"lwss", "!Name: LWSS\n.O..O\nO....\nO...O\nOOOO."},
	{"r-pentomino", "!Name: R-pentomino\n.OO\nOO.\n.O."},
	{"diehard", "!Name: Diehard\n......O.\nOO......\n.O...OOO"},
	{"acorn", "!Name: Acorn\n.O.....\n...O...\nOO..OOO"},
	{"gosper-glider-gun", "!Name: Gosper glider gun\n" +
		"........................O...........\n" +
		"......................O.O...........\n" +
		"............OO......OO............OO\n" +
		"...........O...O....OO............OO\n" +
		"OO........O.....O...OO..............\n" +
		"OO........O...O.OO....O.O...........\n" +
		"..........O.....O.......O...........\n" +
		"...........O...O....................\n" +
		"............OO......................"},
}

//Library is a named collection of pattern buffers, safe for concurrent use
type Library struct {
	mu       sync.RWMutex
	patterns map[string]Buffer
}

//NewLibrary creates an empty library
func NewLibrary() *Library {
	return &Library{patterns: map[string]Buffer{}}
}

//Builtin creates a library holding the well known patterns
func Builtin() *Library {
	l := NewLibrary()
	for _, p := range builtinPatterns {
		if err := l.AddText(p.name, p.text); err != nil {
			panic(fmt.Sprintf("builtin pattern %s: %v", p.name, err))
		}
	}
	return l
}

//Add stores the buffer under name, replacing any previous pattern of that name
func (l *Library) Add(name string, b Buffer) error {
	if name == "" {
		return fmt.Errorf("pattern name is empty")
	}
	if err := b.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	l.patterns[name] = b
	l.mu.Unlock()
	return nil
}

//AddText decodes text, sniffing its encoding, and stores it under name
func (l *Library) AddText(name string, text string) error {
	b, err := Parse(text)
	if err != nil {
		return err
	}
	return l.Add(name, b)
}

//AddFile loads a pattern file and stores it under name
func (l *Library) AddFile(name string, path string) error {
	b, err := Load(path)
	if err != nil {
		return err
	}
	return l.Add(name, b)
}

//Get returns the pattern stored under name
func (l *Library) Get(name string) (Buffer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.patterns[name]
	return b, ok
}

//Names returns the sorted pattern names
func (l *Library) Names() []string {
	l.mu.RLock()
	names := make([]string, 0, len(l.patterns))
	for k := range l.patterns {
		names = append(names, k)
	}
	l.mu.RUnlock()
	sort.Strings(names)
	return names
}

//Len returns the number of stored patterns
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.patterns)
}
