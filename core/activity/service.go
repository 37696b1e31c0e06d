package activity

import (
	"context"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Actividad no encontrada")

	transitions = core.Transitions[Status]{
		StatusActive:   {StatusInactive},
		StatusInactive: {StatusActive},
	}
)

type (
	Repository interface {
		// QueryActivities lists activities, newest first.
		QueryActivities(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Activity, error)
		GetActivity(ctx context.Context, id int64, exec ...core.DBExecutor) (Activity, error)
		CreateActivity(ctx context.Context, act Activity, exec ...core.DBExecutor) (int64, error)
		UpdateActivity(ctx context.Context, act Activity, exec ...core.DBExecutor) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

// List returns every activity to staff, active ones only otherwise.
func (svc *Service) List(ctx context.Context, staff bool) ([]Activity, error) {
	var filter QueryFilter
	if !staff {
		filter.Status = StatusActive
	}
	return svc.repo.QueryActivities(ctx, filter)
}

func (svc *Service) Get(ctx context.Context, id int64) (Activity, error) {
	return svc.repo.GetActivity(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewActivity) (Activity, error) {
	na.Clean()
	if err := na.Validate(svc.validator); err != nil {
		return Activity{}, err
	}

	id, err := svc.repo.CreateActivity(ctx, Activity{
		Name:         na.Name,
		Description:  na.Description,
		FormURL:      na.FormURL,
		ImageURL:     na.ImageURL,
		MonthlyPrice: na.MonthlyPrice.Float64,
		Status:       na.Status,
		CreatedAt:    core.NowFunc().UTC(),
	})
	if err != nil {
		return Activity{}, err
	}
	return svc.repo.GetActivity(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, ua UpdateActivity) (Activity, error) {
	orig, err := svc.repo.GetActivity(ctx, id)
	if err != nil {
		return Activity{}, err
	}

	ua.Clean(orig)
	if err = ua.Validate(svc.validator); err != nil {
		return Activity{}, err
	}
	if err = transitions.Check(orig.Status, ua.Status); err != nil {
		return Activity{}, err
	}

	act := orig
	act.Name = ua.Name
	act.Description = ua.Description
	act.FormURL = ua.FormURL
	act.ImageURL = ua.ImageURL
	act.MonthlyPrice = ua.MonthlyPrice.Float64
	act.Status = ua.Status
	return svc.save(ctx, act)
}

// Delete deactivates the activity. The row is kept.
func (svc *Service) Delete(ctx context.Context, id int64) (Activity, error) {
	act, err := svc.repo.GetActivity(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	if err = transitions.Check(act.Status, StatusInactive); err != nil {
		return Activity{}, err
	}
	act.Status = StatusInactive
	return svc.save(ctx, act)
}

func (svc *Service) save(ctx context.Context, act Activity) (Activity, error) {
	act.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdateActivity(ctx, act); err != nil {
		return Activity{}, err
	}
	return svc.repo.GetActivity(ctx, act.ID)
}
