// Package fixturedb is the stubbed remote data source: fixed in-memory
// fixtures standing in for a real backend, with simulated request latency.
// A real implementation replaces it with network calls but keeps the same
// success/failure contracts.
package fixturedb

import (
	"math/rand"
	"sync"
	"time"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/assessment"
	"github.com/kombee/portal/core/course"
	"github.com/kombee/portal/core/notification"
	"github.com/kombee/portal/core/progress"
	"github.com/kombee/portal/core/user"
)

type (
	DB struct {
		minLatency time.Duration
		maxLatency time.Duration

		user         *userTable
		course       *courseTable
		assessment   *assessmentTable
		progress     *progressTable
		notification *notificationTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}

	assessmentTable struct {
		sync.RWMutex
		table map[string]*assessment.Assessment
	}

	progressTable struct {
		sync.RWMutex
		table map[progressKey]*progress.Progress
	}

	progressKey struct {
		userID   string
		courseID string
	}

	notificationTable struct {
		sync.RWMutex
		table map[string]*notification.Notification
		order []string // insertion order
	}
)

// Open builds the fixture DB with the latency window from conf and loads the
// seed data.
func Open(conf *core.Config) (*DB, error) {
	db := &DB{
		minLatency:   conf.SourceLatencyMin,
		maxLatency:   conf.SourceLatencyMax,
		user:         &userTable{table: make(map[string]*user.User)},
		course:       &courseTable{table: make(map[string]*course.Course)},
		assessment:   &assessmentTable{table: make(map[string]*assessment.Assessment)},
		progress:     &progressTable{table: make(map[progressKey]*progress.Progress)},
		notification: &notificationTable{table: make(map[string]*notification.Notification)},
	}
	if err := db.seed(); err != nil {
		return nil, err
	}
	return db, nil
}

// simulateLatency blocks for a random duration within the configured window,
// imitating a remote backend round trip.
func (db *DB) simulateLatency() {
	if db.maxLatency <= 0 {
		return
	}
	delay := db.minLatency
	if span := db.maxLatency - db.minLatency; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	time.Sleep(delay)
}
