package content

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Course is the top-level enrollable unit: an ordered list of modules.
// Module and lesson order is array position; lesson identity is the id
// field, which completion tracking references (never positions).
type Course struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Modules   []Module `json:"modules"`
	CreatedBy string   `json:"created_by,omitempty"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type LessonType string

const (
	LessonVideo      LessonType = "video"
	LessonReading    LessonType = "reading"
	LessonAssignment LessonType = "assignment"
	LessonQuiz       LessonType = "quiz"
)

type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        LessonType `json:"type"`
	Content     string     `json:"content,omitempty"`
	DurationMin Minutes    `json:"duration_min"`
	Resources   []Resource `json:"resources"`
	Quizzes     []Quiz     `json:"quizzes,omitempty"`
}

type Resource struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"` // document, link, video, ...
	URL   string `json:"url,omitempty"`
}

type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Options   []Option  `json:"options"`
	AnswerKey AnswerKey `json:"answer_key,omitempty"`
}

// Key returns the id the scoring map is keyed by: the question's own id,
// or the synthesized q{index} when the source omitted one.
func (q Question) Key(index int) string {
	if q.ID != "" {
		return q.ID
	}
	return "q" + strconv.Itoa(index)
}

// Option is a normalized answer choice. Sources ship options either as a
// bare string or as an {id, text} object; UnmarshalJSON folds both into
// this one shape so nothing downstream duck-types.
type Option struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

func (o *Option) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		o.ID, o.Text = "", s
		return nil
	}
	var obj struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	o.ID, o.Text = obj.ID, obj.Text
	return nil
}

// AnswerKey accepts a bare string or an array of strings on the wire.
// Only the first element is the canonical correct answer; any further
// entries are carried but ignored by grading.
type AnswerKey []string

func (k *AnswerKey) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*k = AnswerKey{s}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*k = AnswerKey(arr)
	return nil
}

// Canonical returns the answer grading compares against, "" when the key
// is empty.
func (k AnswerKey) Canonical() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// Minutes tolerates numbers, numeric strings, and garbage in duration
// fields; anything non-numeric or negative coerces to 0.
type Minutes float64

func (m *Minutes) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		if f < 0 {
			f = 0
		}
		*m = Minutes(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f >= 0 {
			*m = Minutes(f)
			return nil
		}
	}
	*m = 0
	return nil
}
