package assessment

import "time"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillBlank      QuestionType = "fill_blank"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question carries an ordered set of options; CorrectOptionID is always a
// member of Options.
type Question struct {
	ID              string       `json:"id"`
	Text            string       `json:"text"`
	Options         []Option     `json:"options"`
	CorrectOptionID string       `json:"correct_option_id"`
	Explanation     string       `json:"explanation,omitempty"`
	Type            QuestionType `json:"type"`
	Difficulty      Difficulty   `json:"difficulty,omitempty"`
}

type Assessment struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Questions    []Question `json:"questions"`
	TimeLimit    int        `json:"time_limit,omitempty"`   // minutes; 0 = no limit
	PassingScore int        `json:"passing_score"`          // percentage 0–100
	Attempts     int        `json:"attempts,omitempty"`     // max attempts allowed
	CourseID     string     `json:"course_id,omitempty"`
	ModuleID     string     `json:"module_id,omitempty"`
	LessonID     string     `json:"lesson_id,omitempty"`
}

func (a Assessment) question(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// UserAnswer is a recorded answer for one question during an attempt.
type UserAnswer struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
}

// ResultAnswer is the per-question record frozen at submission.
type ResultAnswer struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
	IsCorrect        bool   `json:"is_correct"`
}

// Result is immutable once produced by Submit.
type Result struct {
	AssessmentID   string         `json:"assessment_id"`
	Score          float64        `json:"score"` // 0–100
	Passed         bool           `json:"passed"`
	CorrectAnswers int            `json:"correct_answers"`
	TotalQuestions int            `json:"total_questions"`
	CompletedAt    time.Time      `json:"completed_at"`
	TimeSpent      int            `json:"time_spent"` // seconds
	Answers        []ResultAnswer `json:"answers"`
}
