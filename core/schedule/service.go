package schedule

import (
	"context"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("Horario no encontrado")
	ErrCapacityBelowSeats = core.NewConflictError("El cupo máximo no puede ser menor que las suscripciones activas del horario")

	errActivityMissing   = core.FieldError{Field: "actividad_id", Error: "La actividad seleccionada no existe"}
	errInstructorMissing = core.FieldError{Field: "profesor_id", Error: "El profesor seleccionado no existe"}
)

type (
	Repository interface {
		ActivityExists(ctx context.Context, id int64, exec ...core.DBExecutor) (bool, error)
		InstructorExists(ctx context.Context, id int64, exec ...core.DBExecutor) (bool, error)
		// QuerySchedules lists schedules, active ones first, then by days and start time.
		QuerySchedules(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Schedule, error)
		GetSchedule(ctx context.Context, id int64, exec ...core.DBExecutor) (Schedule, error)
		CreateSchedule(ctx context.Context, sch Schedule, exec ...core.DBExecutor) (int64, error)
		UpdateSchedule(ctx context.Context, sch Schedule, exec ...core.DBExecutor) error
		// LockSeats locks the schedule row until the end of the transaction exec belongs to,
		// then counts its Activa subscriptions. Returns ErrNotFound if there is no such schedule.
		LockSeats(ctx context.Context, id int64, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo      Repository
		tx        core.Transactor
		validator *core.Validator
	}
)

func NewService(repo Repository, tx core.Transactor, validator *core.Validator) *Service {
	registerValidators(validator)
	return &Service{repo: repo, tx: tx, validator: validator}
}

// checkReferences makes sure the activity and instructor exist; the foreign keys are only a fallback.
func (svc *Service) checkReferences(ctx context.Context, activityID, instructorID int64) error {
	var flds []core.FieldError

	ok, err := svc.repo.ActivityExists(ctx, activityID)
	if err != nil {
		return err
	}
	if !ok {
		flds = append(flds, errActivityMissing)
	}

	if ok, err = svc.repo.InstructorExists(ctx, instructorID); err != nil {
		return err
	}
	if !ok {
		flds = append(flds, errInstructorMissing)
	}

	if len(flds) > 0 {
		return core.NewValidationError(core.ErrInvalidData, flds...)
	}
	return nil
}

// List returns every schedule to staff, active ones only otherwise.
func (svc *Service) List(ctx context.Context, staff bool) ([]Schedule, error) {
	return svc.repo.QuerySchedules(ctx, QueryFilter{ActiveOnly: !staff})
}

// ListByActivity returns the active schedules of an activity.
func (svc *Service) ListByActivity(ctx context.Context, activityID int64) ([]Schedule, error) {
	return svc.repo.QuerySchedules(ctx, QueryFilter{ActivityID: activityID, ActiveOnly: true})
}

func (svc *Service) Get(ctx context.Context, id int64) (Schedule, error) {
	return svc.repo.GetSchedule(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ns NewSchedule) (Schedule, error) {
	ns.Clean()
	if err := ns.Validate(svc.validator); err != nil {
		return Schedule{}, err
	}
	if err := svc.checkReferences(ctx, ns.ActivityID.Int64, ns.InstructorID.Int64); err != nil {
		return Schedule{}, err
	}

	id, err := svc.repo.CreateSchedule(ctx, Schedule{
		ActivityID:   ns.ActivityID.Int64,
		InstructorID: ns.InstructorID.Int64,
		Days:         ns.Days,
		StartTime:    ns.StartTime,
		EndTime:      ns.EndTime,
		Capacity:     int(ns.Capacity.Int64),
		Notes:        ns.Notes,
		Active:       *ns.Active,
		CreatedAt:    core.NowFunc().UTC(),
	})
	if err != nil {
		return Schedule{}, err
	}
	return svc.repo.GetSchedule(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, us UpdateSchedule) (Schedule, error) {
	orig, err := svc.repo.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	us.Clean(orig)
	if err = us.Validate(svc.validator); err != nil {
		return Schedule{}, err
	}
	if err = svc.checkReferences(ctx, us.ActivityID.Int64, us.InstructorID.Int64); err != nil {
		return Schedule{}, err
	}

	sch := orig
	sch.ActivityID = us.ActivityID.Int64
	sch.InstructorID = us.InstructorID.Int64
	sch.Days = us.Days
	sch.StartTime = us.StartTime
	sch.EndTime = us.EndTime
	sch.Capacity = int(us.Capacity.Int64)
	sch.Notes = us.Notes
	sch.Active = *us.Active
	sch.UpdatedAt.SetValid(core.NowFunc().UTC())

	// subscriptions lock the same row before taking a seat
	err = svc.tx.InTx(ctx, func(exec core.DBExecutor) error {
		taken, err := svc.repo.LockSeats(ctx, id, exec)
		if err != nil {
			return err
		}
		if sch.Capacity < taken {
			return ErrCapacityBelowSeats
		}
		return svc.repo.UpdateSchedule(ctx, sch, exec)
	})
	if err != nil {
		return Schedule{}, err
	}
	return svc.repo.GetSchedule(ctx, id)
}

// Delete deactivates the schedule. Its subscriptions are left untouched.
func (svc *Service) Delete(ctx context.Context, id int64) (Schedule, error) {
	sch, err := svc.repo.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	sch.Active = false
	return svc.save(ctx, sch)
}

func (svc *Service) save(ctx context.Context, sch Schedule) (Schedule, error) {
	sch.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdateSchedule(ctx, sch); err != nil {
		return Schedule{}, err
	}
	return svc.repo.GetSchedule(ctx, sch.ID)
}
