// Package nav sequences a learner through a course's modules and
// lessons. All functions are pure over the course tree, clamp against
// its bounds, and never index out of range — the course object a caller
// holds may be stale relative to the persisted position.
package nav

import "github.com/lumenlms/lumen/internal/content"

// Position identifies a lesson by (moduleIndex, lessonIndex). The first
// and last lessons are terminal: Next/Previous stay in place there, no
// wraparound.
type Position struct {
	Module int `json:"module"`
	Lesson int `json:"lesson"`
}

// Clamp snaps a position to the nearest valid one. A course with no
// modules (or only empty modules) clamps to (0,0).
func Clamp(c content.Course, p Position) Position {
	if len(c.Modules) == 0 {
		return Position{}
	}
	if p.Module < 0 {
		p.Module = 0
	}
	if p.Module >= len(c.Modules) {
		p.Module = len(c.Modules) - 1
	}
	n := len(c.Modules[p.Module].Lessons)
	if p.Lesson < 0 || n == 0 {
		p.Lesson = 0
	} else if p.Lesson >= n {
		p.Lesson = n - 1
	}
	return p
}

// Next advances to the following lesson, crossing into the next
// non-empty module when the current one is exhausted.
func Next(c content.Course, p Position) Position {
	p = Clamp(c, p)
	if len(c.Modules) == 0 {
		return p
	}
	if p.Lesson+1 < len(c.Modules[p.Module].Lessons) {
		return Position{Module: p.Module, Lesson: p.Lesson + 1}
	}
	for m := p.Module + 1; m < len(c.Modules); m++ {
		if len(c.Modules[m].Lessons) > 0 {
			return Position{Module: m, Lesson: 0}
		}
	}
	return p
}

// Previous is the mirror of Next; at the very first lesson it stays put.
func Previous(c content.Course, p Position) Position {
	p = Clamp(c, p)
	if len(c.Modules) == 0 {
		return p
	}
	if p.Lesson > 0 {
		return Position{Module: p.Module, Lesson: p.Lesson - 1}
	}
	for m := p.Module - 1; m >= 0; m-- {
		if n := len(c.Modules[m].Lessons); n > 0 {
			return Position{Module: m, Lesson: n - 1}
		}
	}
	return p
}

// JumpTo seeks directly to (moduleIndex, lessonIndex), clamping
// out-of-range requests to the nearest valid position.
func JumpTo(c content.Course, moduleIndex, lessonIndex int) Position {
	return Clamp(c, Position{Module: moduleIndex, Lesson: lessonIndex})
}
