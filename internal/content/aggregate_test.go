package content

import "testing"

func TestTotalLessonCount(t *testing.T) {
	c := Course{Modules: []Module{
		{Lessons: []Lesson{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		{Lessons: []Lesson{{ID: "d"}, {ID: "e"}, {ID: "f"}}},
	}}
	if got := TotalLessonCount(c); got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
	if got := TotalLessonCount(Course{}); got != 0 {
		t.Fatalf("empty course: got %d, want 0", got)
	}
}

func TestDocumentResourceCount(t *testing.T) {
	c := Course{Modules: []Module{{Lessons: []Lesson{
		{Resources: []Resource{{Type: "document"}, {Type: "link"}}},
		{Resources: []Resource{{Type: "document"}}},
		{}, // no resources at all
	}}}}
	if got := DocumentResourceCount(c); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestLessonAtBounds(t *testing.T) {
	c := Course{Modules: []Module{{Lessons: []Lesson{{ID: "a"}}}}}
	if _, ok := LessonAt(c, 0, 0); !ok {
		t.Fatal("in-bounds lookup failed")
	}
	for _, pair := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		if _, ok := LessonAt(c, pair[0], pair[1]); ok {
			t.Fatalf("out-of-bounds (%d,%d) returned ok", pair[0], pair[1])
		}
	}
}

func TestHasLesson(t *testing.T) {
	c := Course{Modules: []Module{{Lessons: []Lesson{{ID: "a"}}}, {Lessons: []Lesson{{ID: "b"}}}}}
	if !HasLesson(c, "b") {
		t.Fatal("b missing")
	}
	if HasLesson(c, "z") {
		t.Fatal("phantom lesson")
	}
}
