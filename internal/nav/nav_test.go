package nav

import (
	"strconv"
	"testing"

	"github.com/lumenlms/lumen/internal/content"
)

// two modules of three lessons each
func twoByThree() content.Course {
	c := content.Course{ID: "c1"}
	for m := 0; m < 2; m++ {
		mod := content.Module{ID: "m" + strconv.Itoa(m)}
		for l := 0; l < 3; l++ {
			mod.Lessons = append(mod.Lessons, content.Lesson{ID: "m" + strconv.Itoa(m) + "l" + strconv.Itoa(l)})
		}
		c.Modules = append(c.Modules, mod)
	}
	return c
}

func TestNextWithinModule(t *testing.T) {
	c := twoByThree()
	got := Next(c, Position{Module: 0, Lesson: 0})
	if got != (Position{Module: 0, Lesson: 1}) {
		t.Fatalf("got %+v", got)
	}
}

func TestNextCrossesModuleBoundary(t *testing.T) {
	c := twoByThree()
	got := Next(c, Position{Module: 0, Lesson: 2})
	if got != (Position{Module: 1, Lesson: 0}) {
		t.Fatalf("got %+v", got)
	}
}

func TestNextTerminalAtLastLesson(t *testing.T) {
	c := twoByThree()
	last := Position{Module: 1, Lesson: 2}
	if got := Next(c, last); got != last {
		t.Fatalf("last lesson must be terminal, got %+v", got)
	}
}

func TestPreviousTerminalAtFirstLesson(t *testing.T) {
	c := twoByThree()
	first := Position{Module: 0, Lesson: 0}
	if got := Previous(c, first); got != first {
		t.Fatalf("first lesson must be terminal, got %+v", got)
	}
}

func TestNextThenPreviousRoundTrips(t *testing.T) {
	c := twoByThree()
	for _, start := range []Position{
		{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1},
	} {
		if got := Previous(c, Next(c, start)); got != start {
			t.Fatalf("start %+v: previous(next) = %+v", start, got)
		}
	}
}

func TestJumpToClampsOutOfRange(t *testing.T) {
	c := twoByThree()
	got := JumpTo(c, 5, 0)
	if got.Module < 0 || got.Module >= len(c.Modules) {
		t.Fatalf("module out of bounds: %+v", got)
	}
	if got != (Position{Module: 1, Lesson: 0}) {
		t.Fatalf("got %+v, want clamp to last module", got)
	}
	if got := JumpTo(c, -3, 99); got != (Position{Module: 0, Lesson: 2}) {
		t.Fatalf("got %+v", got)
	}
}

func TestEmptyCourseIsAlwaysOrigin(t *testing.T) {
	var c content.Course
	for _, got := range []Position{
		Next(c, Position{Module: 4, Lesson: 4}),
		Previous(c, Position{Module: 4, Lesson: 4}),
		JumpTo(c, 4, 4),
	} {
		if got != (Position{}) {
			t.Fatalf("got %+v, want origin", got)
		}
	}
}

func TestNavigationSkipsEmptyModules(t *testing.T) {
	c := content.Course{Modules: []content.Module{
		{ID: "m0", Lessons: []content.Lesson{{ID: "a"}}},
		{ID: "m1"}, // no lessons
		{ID: "m2", Lessons: []content.Lesson{{ID: "b"}, {ID: "c"}}},
	}}
	if got := Next(c, Position{Module: 0, Lesson: 0}); got != (Position{Module: 2, Lesson: 0}) {
		t.Fatalf("next skipped wrong: %+v", got)
	}
	if got := Previous(c, Position{Module: 2, Lesson: 0}); got != (Position{Module: 0, Lesson: 0}) {
		t.Fatalf("previous skipped wrong: %+v", got)
	}
}
