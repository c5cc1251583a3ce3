// Package quiz grades submitted answer sets and persists the most recent
// attempt per (user, quiz). Grading is a pure function; the pass cutoff
// is presentation policy and lives in the consuming layer.
package quiz

import (
	"math"
	"strings"

	"github.com/lumenlms/lumen/internal/content"
)

// PassThreshold is the percentage cutoff the API layer uses for its
// pass/fail flag. The grader itself is threshold-agnostic.
const PassThreshold = 80

type Result struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Grade scores answers against a quiz definition. An answer is correct
// iff it equals the question's canonical answer after trimming and
// lowercasing both sides. Questions without a key never score. A quiz
// with no questions grades to 0/0/0.
func Grade(q content.Quiz, answers map[string]string) Result {
	total := len(q.Questions)
	score := 0
	for i, question := range q.Questions {
		given, ok := answers[question.Key(i)]
		if !ok {
			continue
		}
		want := question.AnswerKey.Canonical()
		if want == "" {
			continue
		}
		if fold(given) == fold(want) {
			score++
		}
	}
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(score) / float64(total) * 100))
	}
	return Result{Score: score, Total: total, Percentage: pct}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
