// Package progress tracks per-user, per-course completion state.
package progress

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/kombee/portal/core"
)

var (
	// errors
	ErrProgressNotFound = errors.New("progress not found")
	ErrNoActiveProgress = errors.New("no current progress found")
)

type (
	// Source is the remote data source contract for progress records.
	Source interface {
		FetchUserProgress(userID string) ([]Progress, error)
		// FetchCourseProgress fails with ErrProgressNotFound when absent.
		FetchCourseProgress(userID, courseID string) (Progress, error)
		SaveProgress(p Progress) error
	}

	// LessonCounter supplies the real lesson total of a course; the catalog
	// store implements it.
	LessonCounter interface {
		TotalLessons(courseID string) (int, error)
	}
)

// State is the tracker snapshot exposed to the presentation layer.
type State struct {
	UserProgress []Progress
	Current      *Progress
	Loading      bool
	Err          error
}

type Tracker struct {
	src     Source
	lessons LessonCounter

	mu      sync.Mutex
	gen     uint64
	state   State
	changes core.Broadcaster
}

func NewTracker(src Source, lessons LessonCounter) *Tracker {
	return &Tracker{src: src, lessons: lessons}
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) Subscribe(fn func()) func() {
	return t.changes.Subscribe(fn)
}

// FetchUserProgress loads all progress records for a user;
// no records is an empty slice, not an error.
func (t *Tracker) FetchUserProgress(userID string) ([]Progress, error) {
	gen := t.begin()

	recs, err := t.src.FetchUserProgress(userID)
	if err != nil {
		return nil, t.fail(gen, err)
	}

	t.complete(gen, func(st *State) { st.UserProgress = recs })
	return recs, nil
}

// FetchCourseProgress loads the single record for (userID, courseID) and
// makes it the current record.
func (t *Tracker) FetchCourseProgress(userID, courseID string) (Progress, error) {
	gen := t.begin()

	rec, err := t.src.FetchCourseProgress(userID, courseID)
	if err != nil {
		return Progress{}, t.fail(gen, err)
	}

	t.complete(gen, func(st *State) { st.Current = &rec })
	return rec, nil
}

// MarkLessonCompleted adds lessonID to the current record's completed set.
// Idempotent: a repeated lesson id changes nothing in the set but still
// bumps LastAccessed. PercentComplete is recomputed from the course's real
// lesson total whenever the set grows.
func (t *Tracker) MarkLessonCompleted(userID, courseID, lessonID string) (Progress, error) {
	gen := t.begin()

	t.mu.Lock()
	cur := t.state.Current
	if cur == nil || cur.UserID != userID || cur.CourseID != courseID {
		t.mu.Unlock()
		return Progress{}, t.fail(gen, ErrNoActiveProgress)
	}
	rec := *cur
	rec.CompletedLessons = append([]string(nil), cur.CompletedLessons...)
	t.mu.Unlock()

	if !rec.HasCompleted(lessonID) {
		rec.CompletedLessons = append(rec.CompletedLessons, lessonID)

		total, err := t.lessons.TotalLessons(courseID)
		if err != nil {
			return Progress{}, t.fail(gen, err)
		}
		if total > 0 {
			pct := int(math.Round(100 * float64(len(rec.CompletedLessons)) / float64(total)))
			if pct > 100 {
				pct = 100
			}
			rec.PercentComplete = pct
		}
	}
	rec.LastAccessed = time.Now().UTC()

	if err := t.src.SaveProgress(rec); err != nil {
		return Progress{}, t.fail(gen, err)
	}

	t.complete(gen, func(st *State) { st.apply(rec) })
	return rec, nil
}

// RecordAssessmentResult appends a submitted result snapshot to the current
// record.
func (t *Tracker) RecordAssessmentResult(userID, courseID string, result AssessmentResult) (Progress, error) {
	gen := t.begin()

	t.mu.Lock()
	cur := t.state.Current
	if cur == nil || cur.UserID != userID || cur.CourseID != courseID {
		t.mu.Unlock()
		return Progress{}, t.fail(gen, ErrNoActiveProgress)
	}
	rec := *cur
	rec.AssessmentResults = append(append([]AssessmentResult(nil), cur.AssessmentResults...), result)
	t.mu.Unlock()

	rec.LastAccessed = time.Now().UTC()

	if err := t.src.SaveProgress(rec); err != nil {
		return Progress{}, t.fail(gen, err)
	}

	t.complete(gen, func(st *State) { st.apply(rec) })
	return rec, nil
}

func (t *Tracker) ResetError() {
	t.mu.Lock()
	t.state.Err = nil
	t.mu.Unlock()
	t.changes.Notify()
}

// apply swaps rec in as the current record and updates it in the user list.
func (st *State) apply(rec Progress) {
	st.Current = &rec
	for i, p := range st.UserProgress {
		if p.UserID == rec.UserID && p.CourseID == rec.CourseID {
			st.UserProgress[i] = rec
			return
		}
	}
}

func (t *Tracker) begin() uint64 {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.state.Loading = true
	t.state.Err = nil
	t.mu.Unlock()
	t.changes.Notify()
	return gen
}

func (t *Tracker) complete(gen uint64, apply func(*State)) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.state.Loading = false
	apply(&t.state)
	t.mu.Unlock()
	t.changes.Notify()
}

func (t *Tracker) fail(gen uint64, err error) error {
	t.mu.Lock()
	if gen == t.gen {
		t.state.Loading = false
		t.state.Err = err
	}
	t.mu.Unlock()
	t.changes.Notify()
	return err
}
