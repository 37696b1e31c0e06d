package inmemdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/news"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
)

type (
	// DB keeps every table behind one lock so joined reads see a consistent state.
	DB struct {
		mutex sync.RWMutex
		txMu  sync.Mutex

		activities    *table[activity.Activity]
		instructors   *table[instructor.Instructor]
		schedules     *table[schedule.Schedule]
		subscribers   *table[subscriber.Subscriber]
		subscriptions *table[subscription.Subscription]
		posts         *table[news.Post]
		users         *table[staff.User]
	}

	table[T any] struct {
		rows  map[int64]T
		seq   int64
		setID func(*T, int64)
	}
)

func Open() *DB {
	return &DB{
		activities:    newTable(func(a *activity.Activity, id int64) { a.ID = id }),
		instructors:   newTable(func(i *instructor.Instructor, id int64) { i.ID = id }),
		schedules:     newTable(func(s *schedule.Schedule, id int64) { s.ID = id }),
		subscribers:   newTable(func(s *subscriber.Subscriber, id int64) { s.ID = id }),
		subscriptions: newTable(func(s *subscription.Subscription, id int64) { s.ID = id }),
		posts:         newTable(func(p *news.Post, id int64) { p.ID = id }),
		users:         newTable(func(u *staff.User, id int64) { u.ID = id }),
	}
}

func newTable[T any](setID func(*T, int64)) *table[T] {
	return &table[T]{rows: make(map[int64]T), setID: setID}
}

func (t *table[T]) insert(row T) int64 {
	t.seq++
	t.setID(&row, t.seq)
	t.rows[t.seq] = row
	return t.seq
}

func (t *table[T]) get(id int64) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) replace(id int64, row T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.setID(&row, id)
	t.rows[id] = row
	return true
}

// filter returns the rows matching keep (all of them when keep is nil), by id.
func (t *table[T]) filter(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		if row := t.rows[id]; keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T]) any(match func(T) bool) bool {
	for _, row := range t.rows {
		if match(row) {
			return true
		}
	}
	return false
}

type transactor struct {
	db *DB
}

var _ core.Transactor = (*transactor)(nil) // interface compliance check

func NewTransactor(db *DB) *transactor {
	return &transactor{db: db}
}

// InTx runs transactions one at a time. Writes made before a failure are kept.
func (t *transactor) InTx(_ context.Context, fn func(exec core.DBExecutor) error) error {
	t.db.txMu.Lock()
	defer t.db.txMu.Unlock()
	return fn(nil)
}

func newerFirst(a, b time.Time, aID, bID int64) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID > bID
}
