package inmemdb

import (
	"context"
	"sort"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
)

type activityRepository struct {
	db *DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) *activityRepository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) QueryActivities(_ context.Context, filter activity.QueryFilter, _ ...core.DBExecutor) ([]activity.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	acts := repo.db.activities.filter(func(a activity.Activity) bool {
		return filter.Status == "" || a.Status == filter.Status
	})
	for i := range acts {
		acts[i] = repo.db.joinActivity(acts[i])
	}
	sort.SliceStable(acts, func(i, j int) bool { return newerFirst(acts[i].CreatedAt, acts[j].CreatedAt, acts[i].ID, acts[j].ID) })
	return acts, nil
}

func (repo *activityRepository) GetActivity(_ context.Context, id int64, _ ...core.DBExecutor) (activity.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	act, ok := repo.db.activities.get(id)
	if !ok {
		return activity.Activity{}, activity.ErrNotFound
	}
	return repo.db.joinActivity(act), nil
}

func (repo *activityRepository) CreateActivity(_ context.Context, act activity.Activity, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.db.activities.insert(act), nil
}

func (repo *activityRepository) UpdateActivity(_ context.Context, act activity.Activity, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if !repo.db.activities.replace(act.ID, act) {
		return activity.ErrNotFound
	}
	return nil
}
