package fixturedb

import (
	"github.com/kombee/portal/core/assessment"
)

type assessmentSource struct {
	db *DB
}

var _ assessment.Source = (*assessmentSource)(nil) // interface compliance check

func NewAssessmentSource(db *DB) assessment.Source {
	return &assessmentSource{db: db}
}

func (src *assessmentSource) FetchAssessment(id string) (assessment.Assessment, error) {
	src.db.simulateLatency()

	src.db.assessment.RLock()
	defer src.db.assessment.RUnlock()

	if ass, ok := src.db.assessment.table[id]; ok {
		return *ass, nil
	}
	return assessment.Assessment{}, assessment.ErrAssessmentNotFound
}
