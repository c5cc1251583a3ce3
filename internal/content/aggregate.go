package content

// Derived aggregates over the course tree. All of these tolerate
// malformed or empty trees by degrading to zero.

// TotalLessonCount sums lesson counts across all modules.
func TotalLessonCount(c Course) int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// TotalDurationMinutes sums lesson durations. Non-numeric durations were
// already coerced to 0 at the unmarshalling boundary.
func TotalDurationMinutes(c Course) float64 {
	var total float64
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			total += float64(l.DurationMin)
		}
	}
	return total
}

// DocumentResourceCount counts resources of type "document" across all
// lessons.
func DocumentResourceCount(c Course) int {
	n := 0
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			for _, r := range l.Resources {
				if r.Type == "document" {
					n++
				}
			}
		}
	}
	return n
}

// LessonAt returns the lesson at (moduleIndex, lessonIndex), false when
// either index is out of bounds.
func LessonAt(c Course, moduleIndex, lessonIndex int) (Lesson, bool) {
	if moduleIndex < 0 || moduleIndex >= len(c.Modules) {
		return Lesson{}, false
	}
	m := c.Modules[moduleIndex]
	if lessonIndex < 0 || lessonIndex >= len(m.Lessons) {
		return Lesson{}, false
	}
	return m.Lessons[lessonIndex], true
}

// HasLesson reports whether any lesson in the course carries the id.
func HasLesson(c Course, lessonID string) bool {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return true
			}
		}
	}
	return false
}
