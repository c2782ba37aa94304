package godeco

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync/atomic"
)

// Tracker follows the service types being resolved along one resolution chain.
//
// Each resolution works on its own copy (NewTrackerFrom), a tracker is never written once it
// has been handed to a factory. It is marked finished when the resolution that created it
// returns, so a resolver kept by a component starts a fresh chain.
type Tracker struct {
	visited  map[reflect.Type]struct{}
	stack    []reflect.Type
	finished atomic.Bool
}

func NewTracker() *Tracker {
	return &Tracker{
		visited: make(map[reflect.Type]struct{}),
		stack:   make([]reflect.Type, 0),
	}
}

func NewTrackerFrom(other *Tracker) *Tracker {
	return &Tracker{
		visited: maps.Clone(other.visited),
		stack:   slices.Clone(other.stack),
	}
}

func (tracker *Tracker) Push(typ reflect.Type) error {
	if _, found := tracker.visited[typ]; found {
		cycle := []reflect.Type{typ}
		for i := len(tracker.stack) - 1; i >= 0; i-- {
			cycle = append(cycle, tracker.stack[i])
			if tracker.stack[i] == typ {
				break
			}
		}

		return fmt.Errorf("cycle found:\n%s", formatCycle(cycle))
	}
	tracker.visited[typ] = struct{}{}
	tracker.stack = append(tracker.stack, typ)

	return nil
}

func (tracker *Tracker) Finish() {
	tracker.finished.Store(true)
}

// Active reports whether the resolution chain owning the tracker is still running.
func (tracker *Tracker) Active() bool {
	return tracker != nil && !tracker.finished.Load()
}

func formatCycle(cycle []reflect.Type) string {
	var b strings.Builder
	for i := len(cycle) - 1; i >= 0; i-- {
		depth := len(cycle) - 1 - i
		b.WriteString(strings.Repeat("\t", depth))
		if depth > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(cycle[i].String())
		b.WriteString("\n")
	}
	return b.String()
}
