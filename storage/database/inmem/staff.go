package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/staff"
)

type staffRepository struct {
	db *DB
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *DB) *staffRepository {
	return &staffRepository{db: db}
}

func (repo *staffRepository) usernameTaken(username string, excludedID int64) bool {
	return repo.db.users.any(func(u staff.User) bool {
		return u.ID != excludedID && u.Username == username
	})
}

func (repo *staffRepository) CheckUsernameUniqueness(_ context.Context, username string, excludedID int64, _ ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.usernameTaken(username, excludedID) {
		return staff.ErrUsernameExists
	}
	return nil
}

func (repo *staffRepository) QueryUsers(_ context.Context, filter staff.QueryFilter, _ ...core.DBExecutor) ([]staff.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	users := repo.db.users.filter(func(u staff.User) bool {
		return filter.Status == "" || u.Status == filter.Status
	})
	sort.SliceStable(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (repo *staffRepository) GetUser(_ context.Context, id int64, _ ...core.DBExecutor) (staff.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	usr, ok := repo.db.users.get(id)
	if !ok {
		return staff.User{}, staff.ErrNotFound
	}
	return usr, nil
}

func (repo *staffRepository) GetUserByUsername(_ context.Context, username string, _ ...core.DBExecutor) (staff.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, usr := range repo.db.users.filter(nil) {
		if usr.Username == username {
			return usr, nil
		}
	}
	return staff.User{}, staff.ErrNotFound
}

func (repo *staffRepository) CreateUser(_ context.Context, usr staff.User, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.usernameTaken(usr.Username, 0) {
		return 0, staff.ErrUsernameExists
	}
	return repo.db.users.insert(usr), nil
}

func (repo *staffRepository) UpdateUser(_ context.Context, usr staff.User, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.usernameTaken(usr.Username, usr.ID) {
		return staff.ErrUsernameExists
	}
	if !repo.db.users.replace(usr.ID, usr) {
		return staff.ErrNotFound
	}
	return nil
}

func (repo *staffRepository) SetLastLogin(_ context.Context, id int64, at time.Time, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	usr, ok := repo.db.users.get(id)
	if !ok {
		return staff.ErrNotFound
	}
	usr.LastLogin.SetValid(at.UTC())
	repo.db.users.replace(id, usr)
	return nil
}
