// Package assessment delivers questions, captures answers and scores
// submitted attempts.
package assessment

import (
	"errors"
	"sync"
	"time"

	"github.com/kombee/portal/core"
)

var (
	// errors
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrNoCurrentAssessment = errors.New("no current assessment found")
	ErrEmptyAssessment     = errors.New("assessment has no questions")
	ErrNotStarted          = errors.New("assessment not started")
	ErrAlreadySubmitted    = errors.New("assessment already submitted")
)

// Source is the remote data source contract for assessments.
type Source interface {
	// FetchAssessment fails with ErrAssessmentNotFound for an unknown id.
	FetchAssessment(id string) (Assessment, error)
}

// Phase of the current attempt.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseSubmitted  Phase = "submitted"
)

// State is the engine snapshot exposed to the presentation layer.
// RemainingSeconds is nil when the current assessment has no time limit.
type State struct {
	Assessments      []Assessment
	Current          *Assessment
	Answers          []UserAnswer
	RemainingSeconds *int
	Phase            Phase
	Result           *Result
	Loading          bool
	Err              error
}

// Engine runs one attempt at a time. It consumes countdown ticks but owns no
// clock: the hosting layer drives Tick and decides when to force Submit.
type Engine struct {
	src Source

	mu        sync.Mutex
	gen       uint64
	state     State
	startedAt time.Time
	changes   core.Broadcaster
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src, state: State{Phase: PhaseNotStarted}}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Subscribe(fn func()) func() {
	return e.changes.Subscribe(fn)
}

// Fetch loads an assessment by id and makes it current, without starting an
// attempt.
func (e *Engine) Fetch(id string) (Assessment, error) {
	gen := e.begin()

	a, err := e.src.FetchAssessment(id)
	if err != nil {
		return Assessment{}, e.fail(gen, err)
	}

	e.complete(gen, func(st *State) {
		kept := st.Assessments[:0]
		for _, existing := range st.Assessments {
			if existing.ID != a.ID {
				kept = append(kept, existing)
			}
		}
		st.Assessments = append(kept, a)
		st.Current = &a
	})
	return a, nil
}

// Start begins an attempt at a: prior answers and score are discarded and the
// countdown is initialized from the assessment's time limit, if any.
func (e *Engine) Start(a Assessment) {
	e.mu.Lock()
	e.state.Current = &a
	e.state.Answers = nil
	e.state.Result = nil
	e.state.Phase = PhaseInProgress
	if a.TimeLimit > 0 {
		remaining := a.TimeLimit * 60 // seconds
		e.state.RemainingSeconds = &remaining
	} else {
		e.state.RemainingSeconds = nil
	}
	e.startedAt = time.Now()
	e.mu.Unlock()
	e.changes.Notify()
}

// Answer records the selected option for a question, replacing any earlier
// answer to the same question. Valid in the in-progress phase only.
func (e *Engine) Answer(questionID, selectedOptionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state.Phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}

	for i, ans := range e.state.Answers {
		if ans.QuestionID == questionID {
			e.state.Answers[i].SelectedOptionID = selectedOptionID
			return nil
		}
	}
	e.state.Answers = append(e.state.Answers, UserAnswer{
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
	})
	return nil
}

// Tick updates the countdown with the caller-computed remaining seconds.
// The engine never submits on its own when the value reaches zero.
func (e *Engine) Tick(remainingSeconds int) {
	e.mu.Lock()
	if e.state.Phase == PhaseInProgress && e.state.RemainingSeconds != nil {
		if remainingSeconds < 0 {
			remainingSeconds = 0
		}
		e.state.RemainingSeconds = &remainingSeconds
	}
	e.mu.Unlock()
	e.changes.Notify()
}

// Submit scores the recorded answers against the current assessment.
// Unanswered questions count as incorrect. The produced Result is immutable.
func (e *Engine) Submit() (Result, error) {
	gen := e.begin()

	e.mu.Lock()
	cur := e.state.Current
	if cur == nil {
		e.mu.Unlock()
		return Result{}, e.fail(gen, ErrNoCurrentAssessment)
	}
	switch e.state.Phase {
	case PhaseNotStarted:
		e.mu.Unlock()
		return Result{}, e.fail(gen, ErrNotStarted)
	case PhaseSubmitted:
		e.mu.Unlock()
		return Result{}, e.fail(gen, ErrAlreadySubmitted)
	}
	a := *cur
	answers := append([]UserAnswer(nil), e.state.Answers...)
	startedAt := e.startedAt
	e.mu.Unlock()

	total := len(a.Questions)
	if total == 0 {
		return Result{}, e.fail(gen, ErrEmptyAssessment)
	}

	var correct int
	resAnswers := make([]ResultAnswer, 0, len(answers))
	for _, ans := range answers {
		q, ok := a.question(ans.QuestionID)
		isCorrect := ok && q.CorrectOptionID == ans.SelectedOptionID
		if isCorrect {
			correct++
		}
		resAnswers = append(resAnswers, ResultAnswer{
			QuestionID:       ans.QuestionID,
			SelectedOptionID: ans.SelectedOptionID,
			IsCorrect:        isCorrect,
		})
	}

	score := 100 * float64(correct) / float64(total)
	res := Result{
		AssessmentID:   a.ID,
		Score:          score,
		Passed:         score >= float64(a.PassingScore),
		CorrectAnswers: correct,
		TotalQuestions: total,
		CompletedAt:    time.Now().UTC(),
		Answers:        resAnswers,
	}
	if !startedAt.IsZero() {
		res.TimeSpent = int(time.Since(startedAt).Seconds())
	}

	e.complete(gen, func(st *State) {
		st.Phase = PhaseSubmitted
		st.Result = &res
	})
	return res, nil
}

// Reset returns the engine to not-started, discarding all in-memory answers
// and the score.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.state.Current = nil
	e.state.Answers = nil
	e.state.RemainingSeconds = nil
	e.state.Phase = PhaseNotStarted
	e.state.Result = nil
	e.state.Err = nil
	e.startedAt = time.Time{}
	e.mu.Unlock()
	e.changes.Notify()
}

func (e *Engine) ResetError() {
	e.mu.Lock()
	e.state.Err = nil
	e.mu.Unlock()
	e.changes.Notify()
}

func (e *Engine) begin() uint64 {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.state.Loading = true
	e.state.Err = nil
	e.mu.Unlock()
	e.changes.Notify()
	return gen
}

func (e *Engine) complete(gen uint64, apply func(*State)) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.state.Loading = false
	apply(&e.state)
	e.mu.Unlock()
	e.changes.Notify()
}

func (e *Engine) fail(gen uint64, err error) error {
	e.mu.Lock()
	if gen == e.gen {
		e.state.Loading = false
		e.state.Err = err
	}
	e.mu.Unlock()
	e.changes.Notify()
	return err
}
