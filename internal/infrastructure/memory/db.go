// Package memory is a process-local store used for local runs and tests.
// All state lives only for the lifetime of the process.
package memory

import (
	"sync"
	"time"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
)

type DB struct {
	mutex sync.RWMutex

	// seq orders rows created within the same clock tick.
	seq int64
	now func() time.Time

	users       map[string]*userRow
	activities  map[string]*activityRow
	assignments map[string]*assignmentRow
}

type userRow struct {
	entity.User
	seq int64
}

type activityRow struct {
	entity.Activity
	seq int64
}

type assignmentRow struct {
	entity.Assignment
	seq int64
}

func Open() *DB {
	return &DB{
		now:         time.Now,
		users:       make(map[string]*userRow),
		activities:  make(map[string]*activityRow),
		assignments: make(map[string]*assignmentRow),
	}
}

func (db *DB) next() (int64, time.Time) {
	db.seq++
	return db.seq, db.now().UTC()
}
