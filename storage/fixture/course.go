package fixturedb

import (
	"sort"

	"github.com/kombee/portal/core/course"
)

type courseSource struct {
	db *DB
}

var _ course.Source = (*courseSource)(nil) // interface compliance check

func NewCourseSource(db *DB) course.Source {
	return &courseSource{db: db}
}

func (src *courseSource) FetchCourses() ([]course.Course, error) {
	src.db.simulateLatency()

	src.db.course.RLock()
	defer src.db.course.RUnlock()

	courses := make([]course.Course, 0, len(src.db.course.table))
	for _, crs := range src.db.course.table {
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (src *courseSource) FetchCourse(id string) (course.Course, error) {
	src.db.simulateLatency()

	src.db.course.RLock()
	defer src.db.course.RUnlock()

	if crs, ok := src.db.course.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrCourseNotFound
}
