// Package course holds the course catalog store: the course/module/lesson
// tree plus the current navigation cursor.
package course

import (
	"errors"
	"sync"

	"github.com/kombee/portal/core"
)

var (
	// errors
	ErrCourseNotFound = errors.New("course not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

// Source is the remote data source contract for the catalog.
type Source interface {
	FetchCourses() ([]Course, error)
	// FetchCourse fails with ErrCourseNotFound for an unknown id.
	FetchCourse(id string) (Course, error)
}

// State is the catalog snapshot exposed to the presentation layer.
// The Current* cursor fields reset to nil at each coarser level when a finer
// one is not re-specified: fetching a course clears module and lesson,
// fetching a module clears lesson.
type State struct {
	Courses       []Course
	CurrentCourse *Course
	CurrentModule *Module
	CurrentLesson *Lesson
	Loading       bool
	Err           error
}

type Store struct {
	src Source

	mu      sync.Mutex
	gen     uint64
	state   State
	changes core.Broadcaster
}

func NewStore(src Source) *Store {
	return &Store{src: src}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Subscribe(fn func()) func() {
	return s.changes.Subscribe(fn)
}

// FetchCourses loads the whole catalog.
func (s *Store) FetchCourses() ([]Course, error) {
	gen := s.begin()

	courses, err := s.src.FetchCourses()
	if err != nil {
		return nil, s.fail(gen, err)
	}

	s.complete(gen, func(st *State) { st.Courses = courses })
	return courses, nil
}

// FetchCourse loads a single course and points the navigation cursor at it.
func (s *Store) FetchCourse(id string) (Course, error) {
	gen := s.begin()

	crs, err := s.src.FetchCourse(id)
	if err != nil {
		return Course{}, s.fail(gen, err)
	}

	s.complete(gen, func(st *State) {
		st.CurrentCourse = &crs
		st.CurrentModule = nil
		st.CurrentLesson = nil
	})
	return crs, nil
}

// FetchModule resolves courseID then moduleID, failing at the first missing
// ancestor, and moves the cursor to the module.
func (s *Store) FetchModule(courseID, moduleID string) (Module, error) {
	gen := s.begin()

	crs, err := s.src.FetchCourse(courseID)
	if err != nil {
		return Module{}, s.fail(gen, err)
	}
	mod, ok := crs.module(moduleID)
	if !ok {
		return Module{}, s.fail(gen, ErrModuleNotFound)
	}

	s.complete(gen, func(st *State) {
		st.CurrentCourse = &crs
		st.CurrentModule = &mod
		st.CurrentLesson = nil
	})
	return mod, nil
}

// FetchLesson resolves course, then module, then lesson, failing at the first
// missing ancestor, and moves the cursor to the lesson.
func (s *Store) FetchLesson(courseID, moduleID, lessonID string) (Lesson, error) {
	gen := s.begin()

	crs, err := s.src.FetchCourse(courseID)
	if err != nil {
		return Lesson{}, s.fail(gen, err)
	}
	mod, ok := crs.module(moduleID)
	if !ok {
		return Lesson{}, s.fail(gen, ErrModuleNotFound)
	}
	lsn, ok := mod.lesson(lessonID)
	if !ok {
		return Lesson{}, s.fail(gen, ErrLessonNotFound)
	}

	s.complete(gen, func(st *State) {
		st.CurrentCourse = &crs
		st.CurrentModule = &mod
		st.CurrentLesson = &lsn
	})
	return lsn, nil
}

// TotalLessons returns the lesson count of a course, preferring the cached
// catalog and falling back to the source.
func (s *Store) TotalLessons(courseID string) (int, error) {
	s.mu.Lock()
	for _, crs := range s.state.Courses {
		if crs.ID == courseID {
			s.mu.Unlock()
			return crs.TotalLessons(), nil
		}
	}
	s.mu.Unlock()

	crs, err := s.src.FetchCourse(courseID)
	if err != nil {
		return 0, err
	}
	return crs.TotalLessons(), nil
}

// ClearCurrent resets the whole navigation cursor.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	s.state.CurrentCourse = nil
	s.state.CurrentModule = nil
	s.state.CurrentLesson = nil
	s.mu.Unlock()
	s.changes.Notify()
}

func (s *Store) ResetError() {
	s.mu.Lock()
	s.state.Err = nil
	s.mu.Unlock()
	s.changes.Notify()
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.Loading = true
	s.state.Err = nil
	s.mu.Unlock()
	s.changes.Notify()
	return gen
}

func (s *Store) complete(gen uint64, apply func(*State)) {
	s.mu.Lock()
	if gen != s.gen { // stale completion; keep newer state
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	apply(&s.state)
	s.mu.Unlock()
	s.changes.Notify()
}

func (s *Store) fail(gen uint64, err error) error {
	s.mu.Lock()
	if gen == s.gen {
		s.state.Loading = false
		s.state.Err = err
	}
	s.mu.Unlock()
	s.changes.Notify()
	return err
}
