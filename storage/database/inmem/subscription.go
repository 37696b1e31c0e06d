package inmemdb

import (
	"context"
	"sort"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/subscription"
)

type subscriptionRepository struct {
	db *DB
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db *DB) *subscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (repo *subscriptionRepository) SubscriberExists(_ context.Context, id int64, _ ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	_, ok := repo.db.subscribers.get(id)
	return ok, nil
}

// LockSchedule counts the seats. Callers running inside the transactor are already serialized.
func (repo *subscriptionRepository) LockSchedule(_ context.Context, scheduleID int64, _ ...core.DBExecutor) (subscription.Seats, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sch, ok := repo.db.schedules.get(scheduleID)
	if !ok {
		return subscription.Seats{}, subscription.ErrScheduleNotFound
	}
	return subscription.Seats{
		Capacity: sch.Capacity,
		Active:   sch.Active,
		Taken:    repo.db.takenSeats(scheduleID),
	}, nil
}

func (repo *subscriptionRepository) HasOpenSubscription(_ context.Context, subscriberID, scheduleID, excludedID int64, _ ...core.DBExecutor) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.db.subscriptions.any(func(s subscription.Subscription) bool {
		return s.ID != excludedID && s.SubscriberID == subscriberID && s.ScheduleID == scheduleID && s.Status.IsOpen()
	}), nil
}

func (repo *subscriptionRepository) QuerySubscriptions(_ context.Context, filter subscription.QueryFilter, _ ...core.DBExecutor) ([]subscription.Subscription, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := repo.db.subscriptions.filter(func(s subscription.Subscription) bool {
		return (filter.SubscriberID == 0 || s.SubscriberID == filter.SubscriberID) &&
			(filter.Status == "" || s.Status == filter.Status)
	})
	for i := range subs {
		subs[i] = repo.db.joinSubscription(subs[i])
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Status != subs[j].Status {
			return subs[i].Status < subs[j].Status
		}
		return newerFirst(subs[i].CreatedAt, subs[j].CreatedAt, subs[i].ID, subs[j].ID)
	})
	return subs, nil
}

func (repo *subscriptionRepository) GetSubscription(_ context.Context, id int64, _ ...core.DBExecutor) (subscription.Subscription, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sub, ok := repo.db.subscriptions.get(id)
	if !ok {
		return subscription.Subscription{}, subscription.ErrNotFound
	}
	return repo.db.joinSubscription(sub), nil
}

func (repo *subscriptionRepository) CreateSubscription(_ context.Context, sub subscription.Subscription, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.db.subscriptions.insert(sub), nil
}

func (repo *subscriptionRepository) UpdateSubscription(_ context.Context, sub subscription.Subscription, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if !repo.db.subscriptions.replace(sub.ID, sub) {
		return subscription.ErrNotFound
	}
	return nil
}
