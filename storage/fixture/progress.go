package fixturedb

import (
	"sort"

	"github.com/kombee/portal/core/progress"
)

type progressSource struct {
	db *DB
}

var _ progress.Source = (*progressSource)(nil) // interface compliance check

func NewProgressSource(db *DB) progress.Source {
	return &progressSource{db: db}
}

func (src *progressSource) FetchUserProgress(userID string) ([]progress.Progress, error) {
	src.db.simulateLatency()

	src.db.progress.RLock()
	defer src.db.progress.RUnlock()

	var records []progress.Progress
	for key, p := range src.db.progress.table {
		if key.userID == userID {
			records = append(records, *p)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CourseID < records[j].CourseID })
	return records, nil
}

func (src *progressSource) FetchCourseProgress(userID, courseID string) (progress.Progress, error) {
	src.db.simulateLatency()

	src.db.progress.RLock()
	defer src.db.progress.RUnlock()

	if p, ok := src.db.progress.table[progressKey{userID: userID, courseID: courseID}]; ok {
		return *p, nil
	}
	return progress.Progress{}, progress.ErrProgressNotFound
}

func (src *progressSource) SaveProgress(p progress.Progress) error {
	src.db.simulateLatency()

	src.db.progress.Lock()
	defer src.db.progress.Unlock()

	src.db.progress.table[progressKey{userID: p.UserID, courseID: p.CourseID}] = &p
	return nil
}
