package inmemdb

import (
	"context"
	"sort"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) ActivityExists(_ context.Context, id int64, _ ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	_, ok := repo.db.activities.get(id)
	return ok, nil
}

func (repo *scheduleRepository) InstructorExists(_ context.Context, id int64, _ ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	_, ok := repo.db.instructors.get(id)
	return ok, nil
}

func (repo *scheduleRepository) QuerySchedules(_ context.Context, filter schedule.QueryFilter, _ ...core.DBExecutor) ([]schedule.Schedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schs := repo.db.schedules.filter(func(s schedule.Schedule) bool {
		return (filter.ActivityID == 0 || s.ActivityID == filter.ActivityID) && (!filter.ActiveOnly || s.Active)
	})
	for i := range schs {
		schs[i] = repo.db.joinSchedule(schs[i])
	}
	sort.SliceStable(schs, func(i, j int) bool {
		a, b := schs[i], schs[j]
		if a.Active != b.Active {
			return a.Active
		}
		if a.Days != b.Days {
			return a.Days < b.Days
		}
		return a.StartTime < b.StartTime
	})
	return schs, nil
}

func (repo *scheduleRepository) GetSchedule(_ context.Context, id int64, _ ...core.DBExecutor) (schedule.Schedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sch, ok := repo.db.schedules.get(id)
	if !ok {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	return repo.db.joinSchedule(sch), nil
}

func (repo *scheduleRepository) CreateSchedule(_ context.Context, sch schedule.Schedule, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.db.schedules.insert(sch), nil
}

func (repo *scheduleRepository) UpdateSchedule(_ context.Context, sch schedule.Schedule, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if !repo.db.schedules.replace(sch.ID, sch) {
		return schedule.ErrNotFound
	}
	return nil
}

func (repo *scheduleRepository) LockSeats(_ context.Context, id int64, _ ...core.DBExecutor) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.schedules.get(id); !ok {
		return 0, schedule.ErrNotFound
	}
	return repo.db.takenSeats(id), nil
}
