package instructor

import (
	"context"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("Profesor no encontrado")
	ErrEmailExists = core.NewConflictError("El email ya está registrado")

	transitions = core.Transitions[Status]{
		StatusActive:   {StatusInactive},
		StatusInactive: {StatusActive},
	}
)

type (
	Repository interface {
		// CheckEmailUniqueness returns ErrEmailExists if another instructor (than excludedID) uses email.
		CheckEmailUniqueness(ctx context.Context, email string, excludedID int64, exec ...core.DBExecutor) error
		// QueryInstructors lists instructors, newest first.
		QueryInstructors(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Instructor, error)
		GetInstructor(ctx context.Context, id int64, exec ...core.DBExecutor) (Instructor, error)
		CreateInstructor(ctx context.Context, inst Instructor, exec ...core.DBExecutor) (int64, error)
		UpdateInstructor(ctx context.Context, inst Instructor, exec ...core.DBExecutor) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

func (svc *Service) checkUniqueness(ctx context.Context, inst Instructor) error {
	if !inst.Email.Valid {
		return nil
	}
	return svc.repo.CheckEmailUniqueness(ctx, inst.Email.String, inst.ID)
}

// List returns every instructor to staff, active ones only otherwise.
func (svc *Service) List(ctx context.Context, staff bool) ([]Instructor, error) {
	var filter QueryFilter
	if !staff {
		filter.Status = StatusActive
	}
	return svc.repo.QueryInstructors(ctx, filter)
}

func (svc *Service) Get(ctx context.Context, id int64) (Instructor, error) {
	return svc.repo.GetInstructor(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ni NewInstructor) (Instructor, error) {
	ni.Clean()
	if err := ni.Validate(svc.validator); err != nil {
		return Instructor{}, err
	}

	inst := Instructor{
		Name:      ni.Name,
		Specialty: ni.Specialty,
		Phone:     ni.Phone,
		Email:     ni.Email,
		Shift:     ni.Shift,
		Status:    ni.Status,
		CreatedAt: core.NowFunc().UTC(),
	}
	if err := svc.checkUniqueness(ctx, inst); err != nil {
		return Instructor{}, err
	}

	id, err := svc.repo.CreateInstructor(ctx, inst)
	if err != nil {
		return Instructor{}, err
	}
	return svc.repo.GetInstructor(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, ui UpdateInstructor) (Instructor, error) {
	orig, err := svc.repo.GetInstructor(ctx, id)
	if err != nil {
		return Instructor{}, err
	}

	ui.Clean(orig)
	if err = ui.Validate(svc.validator); err != nil {
		return Instructor{}, err
	}
	if err = transitions.Check(orig.Status, ui.Status); err != nil {
		return Instructor{}, err
	}

	inst := orig
	inst.Name = ui.Name
	inst.Specialty = ui.Specialty
	inst.Phone = ui.Phone
	inst.Email = ui.Email
	inst.Shift = ui.Shift
	inst.Status = ui.Status
	if err = svc.checkUniqueness(ctx, inst); err != nil {
		return Instructor{}, err
	}
	return svc.save(ctx, inst)
}

// Delete deactivates the instructor. The row is kept.
func (svc *Service) Delete(ctx context.Context, id int64) (Instructor, error) {
	inst, err := svc.repo.GetInstructor(ctx, id)
	if err != nil {
		return Instructor{}, err
	}
	if err = transitions.Check(inst.Status, StatusInactive); err != nil {
		return Instructor{}, err
	}
	inst.Status = StatusInactive
	return svc.save(ctx, inst)
}

func (svc *Service) save(ctx context.Context, inst Instructor) (Instructor, error) {
	inst.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdateInstructor(ctx, inst); err != nil {
		return Instructor{}, err
	}
	return svc.repo.GetInstructor(ctx, inst.ID)
}
