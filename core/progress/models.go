package progress

import "time"

// Progress is the per (user, course) completion record.
// PercentComplete is derived from CompletedLessons and the course's real
// lesson total; it is never set independently and never decreases.
type Progress struct {
	UserID            string             `json:"user_id"`
	CourseID          string             `json:"course_id"`
	CompletedLessons  []string           `json:"completed_lessons"` // lesson IDs, set semantics
	LastAccessed      time.Time          `json:"last_accessed"`
	AssessmentResults []AssessmentResult `json:"assessment_results"`
	PercentComplete   int                `json:"percent_complete"` // 0–100
}

// HasCompleted reports set membership of lessonID in CompletedLessons.
func (p Progress) HasCompleted(lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// AssessmentResult is an immutable snapshot computed once at submission.
type AssessmentResult struct {
	AssessmentID string    `json:"assessment_id"`
	Score        float64   `json:"score"` // 0–100
	Passed       bool      `json:"passed"`
	CompletedAt  time.Time `json:"completed_at"`
	TimeSpent    int       `json:"time_spent"` // seconds
	Answers      []Answer  `json:"answers"`
}

type Answer struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
	IsCorrect        bool   `json:"is_correct"`
}
