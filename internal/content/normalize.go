package content

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"github.com/lumenlms/lumen/internal/fault"
)

// courseSchema is checked on import. It pins down the shape the rest of
// the system assumes: id/title required, modules an array. Optional
// arrays (resources, quizzes, options) stay optional — Normalize coerces
// their absence to empty, never an error.
const courseSchema = `{
  "type": "object",
  "required": ["title"],
  "properties": {
    "id": {"type": "string"},
    "title": {"type": "string", "minLength": 1},
    "modules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "lessons": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "title"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "title": {"type": "string"},
                "type": {"enum": ["video", "reading", "assignment", "quiz"]}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledCourseSchema = gojsonschema.NewStringLoader(courseSchema)

// ParseCourse validates and normalizes a raw course document.
func ParseCourse(raw []byte) (Course, error) {
	res, err := gojsonschema.Validate(compiledCourseSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Course{}, fault.Validation(err.Error())
	}
	if !res.Valid() {
		msg := "invalid course document"
		if errs := res.Errors(); len(errs) > 0 {
			msg = errs[0].String()
		}
		return Course{}, fault.Validation(msg)
	}
	var c Course
	if err := json.Unmarshal(raw, &c); err != nil {
		return Course{}, fault.Validation(err.Error())
	}
	Normalize(&c)
	return c, nil
}

// Normalize coerces absent nested arrays to empty slices and synthesizes
// q{index} ids for questions that lack one, so downstream logic never
// special-cases nil or missing ids.
func Normalize(c *Course) {
	if c.Modules == nil {
		c.Modules = []Module{}
	}
	for mi := range c.Modules {
		m := &c.Modules[mi]
		if m.Lessons == nil {
			m.Lessons = []Lesson{}
		}
		for li := range m.Lessons {
			l := &m.Lessons[li]
			if l.Type == "" {
				l.Type = LessonReading
			}
			if l.Resources == nil {
				l.Resources = []Resource{}
			}
			for qi := range l.Quizzes {
				normalizeQuiz(&l.Quizzes[qi])
			}
		}
	}
}

func normalizeQuiz(q *Quiz) {
	if q.Questions == nil {
		q.Questions = []Question{}
	}
	for i := range q.Questions {
		qq := &q.Questions[i]
		qq.ID = qq.Key(i)
		if qq.Options == nil {
			qq.Options = []Option{}
		}
	}
}

// StripAnswerKeys blanks every answer key in place. Courses served to
// students go through this, parity with grading reading the full record.
func StripAnswerKeys(c *Course) {
	for mi := range c.Modules {
		for li := range c.Modules[mi].Lessons {
			for qi := range c.Modules[mi].Lessons[li].Quizzes {
				qz := &c.Modules[mi].Lessons[li].Quizzes[qi]
				for i := range qz.Questions {
					qz.Questions[i].AnswerKey = nil
				}
			}
		}
	}
}

// FindQuiz locates a quiz by id anywhere in the course tree.
func FindQuiz(c Course, quizID string) (Quiz, bool) {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			for _, q := range l.Quizzes {
				if q.ID == quizID {
					return q, true
				}
			}
		}
	}
	return Quiz{}, false
}
