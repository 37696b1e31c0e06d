package inmemdb

import (
	"context"
	"sort"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/instructor"
)

type instructorRepository struct {
	db *DB
}

var _ instructor.Repository = (*instructorRepository)(nil) // interface compliance check

func NewInstructorRepository(db *DB) *instructorRepository {
	return &instructorRepository{db: db}
}

func (repo *instructorRepository) emailTaken(email string, excludedID int64) bool {
	return email != "" && repo.db.instructors.any(func(i instructor.Instructor) bool {
		return i.ID != excludedID && i.Email.Valid && i.Email.String == email
	})
}

func (repo *instructorRepository) CheckEmailUniqueness(_ context.Context, email string, excludedID int64, _ ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.emailTaken(email, excludedID) {
		return instructor.ErrEmailExists
	}
	return nil
}

func (repo *instructorRepository) QueryInstructors(_ context.Context, filter instructor.QueryFilter, _ ...core.DBExecutor) ([]instructor.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	insts := repo.db.instructors.filter(func(i instructor.Instructor) bool {
		return filter.Status == "" || i.Status == filter.Status
	})
	for i := range insts {
		insts[i] = repo.db.joinInstructor(insts[i])
	}
	sort.SliceStable(insts, func(i, j int) bool {
		return newerFirst(insts[i].CreatedAt, insts[j].CreatedAt, insts[i].ID, insts[j].ID)
	})
	return insts, nil
}

func (repo *instructorRepository) GetInstructor(_ context.Context, id int64, _ ...core.DBExecutor) (instructor.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	inst, ok := repo.db.instructors.get(id)
	if !ok {
		return instructor.Instructor{}, instructor.ErrNotFound
	}
	return repo.db.joinInstructor(inst), nil
}

func (repo *instructorRepository) CreateInstructor(_ context.Context, inst instructor.Instructor, _ ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.emailTaken(inst.Email.String, 0) {
		return 0, instructor.ErrEmailExists
	}
	return repo.db.instructors.insert(inst), nil
}

func (repo *instructorRepository) UpdateInstructor(_ context.Context, inst instructor.Instructor, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.emailTaken(inst.Email.String, inst.ID) {
		return instructor.ErrEmailExists
	}
	if !repo.db.instructors.replace(inst.ID, inst) {
		return instructor.ErrNotFound
	}
	return nil
}
