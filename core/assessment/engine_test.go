package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	assessments map[string]Assessment
}

func (s *stubSource) FetchAssessment(id string) (Assessment, error) {
	if a, ok := s.assessments[id]; ok {
		return a, nil
	}
	return Assessment{}, ErrAssessmentNotFound
}

func htmlBasics() Assessment {
	return Assessment{
		ID:           "a1",
		Title:        "HTML Basics Assessment",
		PassingScore: 70,
		TimeLimit:    15,
		CourseID:     "c1",
		Questions: []Question{
			{
				ID:              "q1",
				Options:         []Option{{ID: "o1"}, {ID: "o2"}, {ID: "o3"}, {ID: "o4"}},
				CorrectOptionID: "o2",
			},
			{
				ID:              "q2",
				Options:         []Option{{ID: "o1"}, {ID: "o2"}},
				CorrectOptionID: "o1",
			},
			{
				ID:              "q3",
				Options:         []Option{{ID: "o1"}, {ID: "o2"}, {ID: "o3"}, {ID: "o4"}},
				CorrectOptionID: "o3",
			},
		},
	}
}

func setup(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(&stubSource{assessments: map[string]Assessment{"a1": htmlBasics()}})
}

func TestEngine_Fetch(t *testing.T) {
	e := setup(t)

	a, err := e.Fetch("a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)

	st := e.State()
	require.NotNil(t, st.Current)
	assert.Len(t, st.Assessments, 1)
	assert.Equal(t, PhaseNotStarted, st.Phase)

	// re-fetching replaces, not duplicates
	_, err = e.Fetch("a1")
	require.NoError(t, err)
	assert.Len(t, e.State().Assessments, 1)

	_, err = e.Fetch("nope")
	assert.Equal(t, ErrAssessmentNotFound, err)
}

func TestEngine_StartInitializesCountdown(t *testing.T) {
	e := setup(t)

	e.Start(htmlBasics())
	st := e.State()
	assert.Equal(t, PhaseInProgress, st.Phase)
	require.NotNil(t, st.RemainingSeconds)
	assert.Equal(t, 15*60, *st.RemainingSeconds)
	assert.Empty(t, st.Answers)

	// no time limit means no countdown
	untimed := htmlBasics()
	untimed.TimeLimit = 0
	e.Start(untimed)
	assert.Nil(t, e.State().RemainingSeconds)
}

func TestEngine_Answer(t *testing.T) {
	e := setup(t)

	// answering before starting
	assert.Equal(t, ErrNotStarted, e.Answer("q1", "o2"))

	e.Start(htmlBasics())
	require.NoError(t, e.Answer("q1", "o1"))
	// an answer to the same question replaces the earlier one
	require.NoError(t, e.Answer("q1", "o2"))
	require.NoError(t, e.Answer("q2", "o1"))

	st := e.State()
	require.Len(t, st.Answers, 2)
	assert.Equal(t, "o2", st.Answers[0].SelectedOptionID)

	_, err := e.Submit()
	require.NoError(t, err)
	assert.Equal(t, ErrAlreadySubmitted, e.Answer("q3", "o3"))
}

func TestEngine_Tick(t *testing.T) {
	e := setup(t)
	e.Start(htmlBasics())

	e.Tick(10)
	require.NotNil(t, e.State().RemainingSeconds)
	assert.Equal(t, 10, *e.State().RemainingSeconds)

	// clamped at zero, and the engine never submits on its own
	e.Tick(-5)
	assert.Equal(t, 0, *e.State().RemainingSeconds)
	assert.Equal(t, PhaseInProgress, e.State().Phase)
}

func TestEngine_Submit_scoring(t *testing.T) {
	tests := []struct {
		name         string
		answers      map[string]string
		passingScore int
		wantScore    float64
		wantCorrect  int
		wantPassed   bool
	}{
		{
			name:         "two of three at passing score 70 fails",
			answers:      map[string]string{"q1": "o2", "q2": "o1", "q3": "o4"},
			passingScore: 70,
			wantScore:    200.0 / 3,
			wantCorrect:  2,
			wantPassed:   false,
		},
		{
			name:         "two of three at passing score 50 passes",
			answers:      map[string]string{"q1": "o2", "q2": "o1", "q3": "o4"},
			passingScore: 50,
			wantScore:    200.0 / 3,
			wantCorrect:  2,
			wantPassed:   true,
		},
		{
			name:         "all correct",
			answers:      map[string]string{"q1": "o2", "q2": "o1", "q3": "o3"},
			passingScore: 70,
			wantScore:    100,
			wantCorrect:  3,
			wantPassed:   true,
		},
		{
			name:         "unanswered questions count as incorrect",
			answers:      map[string]string{"q1": "o2"},
			passingScore: 70,
			wantScore:    100.0 / 3,
			wantCorrect:  1,
			wantPassed:   false,
		},
		{
			name:         "no answers at all",
			answers:      nil,
			passingScore: 70,
			wantScore:    0,
			wantCorrect:  0,
			wantPassed:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			a := htmlBasics()
			a.PassingScore = tt.passingScore
			e.Start(a)
			for q, o := range tt.answers {
				require.NoError(t, e.Answer(q, o))
			}

			res, err := e.Submit()
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, res.Score, 0.001)
			assert.Equal(t, tt.wantCorrect, res.CorrectAnswers)
			assert.Equal(t, 3, res.TotalQuestions)
			assert.Equal(t, tt.wantPassed, res.Passed)

			st := e.State()
			assert.Equal(t, PhaseSubmitted, st.Phase)
			require.NotNil(t, st.Result)
		})
	}
}

func TestEngine_Submit_errors(t *testing.T) {
	e := setup(t)

	_, err := e.Submit()
	assert.Equal(t, ErrNoCurrentAssessment, err)

	_, err = e.Fetch("a1")
	require.NoError(t, err)
	_, err = e.Submit()
	assert.Equal(t, ErrNotStarted, err)

	e.Start(htmlBasics())
	_, err = e.Submit()
	require.NoError(t, err)
	_, err = e.Submit()
	assert.Equal(t, ErrAlreadySubmitted, err)

	empty := Assessment{ID: "empty", PassingScore: 70}
	e.Start(empty)
	_, err = e.Submit()
	assert.Equal(t, ErrEmptyAssessment, err)
}

func TestEngine_Reset(t *testing.T) {
	e := setup(t)
	e.Start(htmlBasics())
	require.NoError(t, e.Answer("q1", "o2"))
	_, err := e.Submit()
	require.NoError(t, err)

	e.Reset()
	st := e.State()
	assert.Equal(t, PhaseNotStarted, st.Phase)
	assert.Nil(t, st.Current)
	assert.Nil(t, st.Result)
	assert.Empty(t, st.Answers)
	assert.Nil(t, st.RemainingSeconds)
}
