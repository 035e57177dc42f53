package quiz

import "math"

// Result summarizes a completed quiz.
type Result struct {
	Total      int    `json:"total"`
	Correct    int    `json:"correct"`
	Incorrect  int    `json:"incorrect"`
	Unanswered int    `json:"unanswered"`
	Percentage int    `json:"percentage"`
	Grade      string `json:"grade"`
	TimeTaken  int    `json:"timeTaken"`
}

// Grade maps a percentage to a letter grade.
func Grade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// Score computes the result for a session. Unanswered questions count
// against the percentage the same as wrong ones.
func (s *Session) Score() (*Result, error) {
	if s.Status != StatusCompleted {
		return nil, ErrNoActiveQuiz
	}

	r := &Result{Total: len(s.Questions), TimeTaken: s.TimeTaken}
	for i, q := range s.Questions {
		switch {
		case s.Answers[i] == nil:
			r.Unanswered++
		case *s.Answers[i] == q.CorrectOption:
			r.Correct++
		default:
			r.Incorrect++
		}
	}

	if r.Total > 0 {
		r.Percentage = int(math.Round(100 * float64(r.Correct) / float64(r.Total)))
	}
	r.Grade = Grade(r.Percentage)
	return r, nil
}
