package inmemdb

import (
	"context"
	"sort"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/subscriber"
)

type subscriberRepository struct {
	db *DB
}

var _ subscriber.Repository = (*subscriberRepository)(nil) // interface compliance check

func NewSubscriberRepository(db *DB) *subscriberRepository {
	return &subscriberRepository{db: db}
}

func (repo *subscriberRepository) checkUniqueness(email, dni string, excludedID int64) error {
	for _, sub := range repo.db.subscribers.rows {
		if sub.ID == excludedID {
			continue
		}
		if sub.Email == email {
			return subscriber.ErrEmailExists
		}
		if dni != "" && sub.DNI.Valid && sub.DNI.String == dni {
			return subscriber.ErrDNIExists
		}
	}
	return nil
}

func (repo *subscriberRepository) CheckUniqueness(_ context.Context, email, dni string, excludedID int64, _ ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.checkUniqueness(email, dni, excludedID)
}

func (repo *subscriberRepository) QuerySubscribers(_ context.Context, filter subscriber.QueryFilter, _ ...core.DBExecutor) ([]subscriber.Subscriber, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := repo.db.subscribers.filter(func(s subscriber.Subscriber) bool {
		return filter.Status == "" || s.Status == filter.Status
	})
	for i := range subs {
		subs[i] = repo.db.joinSubscriber(subs[i])
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Status != subs[j].Status {
			return subs[i].Status < subs[j].Status
		}
		return subs[i].Name < subs[j].Name
	})
	return subs, nil
}

func (repo *subscriberRepository) GetSubscriber(_ context.Context, id int64, _ ...core.DBExecutor) (subscriber.Subscriber, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sub, ok := repo.db.subscribers.get(id)
	if !ok {
		return subscriber.Subscriber{}, subscriber.ErrNotFound
	}
	return repo.db.joinSubscriber(sub), nil
}

func (repo *subscriberRepository) CreateSubscriber(_ context.Context, sub subscriber.Subscriber, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := repo.checkUniqueness(sub.Email, sub.DNI.String, 0); err != nil {
		return 0, err
	}
	return repo.db.subscribers.insert(sub), nil
}

func (repo *subscriberRepository) UpdateSubscriber(_ context.Context, sub subscriber.Subscriber, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := repo.checkUniqueness(sub.Email, sub.DNI.String, sub.ID); err != nil {
		return err
	}
	if !repo.db.subscribers.replace(sub.ID, sub) {
		return subscriber.ErrNotFound
	}
	return nil
}
