package subscriber

import (
	"context"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("Suscriptor no encontrado")
	ErrEmailExists = core.NewConflictError("El email ya está registrado")
	ErrDNIExists   = core.NewConflictError("El DNI ya está registrado")

	transitions = core.Transitions[Status]{
		StatusPending:  {StatusActive, StatusInactive},
		StatusActive:   {StatusInactive},
		StatusInactive: {StatusActive},
	}
)

type (
	Repository interface {
		// CheckUniqueness returns ErrEmailExists or ErrDNIExists if another subscriber (than excludedID) uses them.
		CheckUniqueness(ctx context.Context, email, dni string, excludedID int64, exec ...core.DBExecutor) error
		// QuerySubscribers lists subscribers ordered by estado then nombre.
		QuerySubscribers(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Subscriber, error)
		GetSubscriber(ctx context.Context, id int64, exec ...core.DBExecutor) (Subscriber, error)
		CreateSubscriber(ctx context.Context, sub Subscriber, exec ...core.DBExecutor) (int64, error)
		UpdateSubscriber(ctx context.Context, sub Subscriber, exec ...core.DBExecutor) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	registerValidators(validator)
	return &Service{repo: repo, validator: validator}
}

func (svc *Service) List(ctx context.Context) ([]Subscriber, error) {
	return svc.repo.QuerySubscribers(ctx, QueryFilter{})
}

func (svc *Service) ListByStatus(ctx context.Context, status string) ([]Subscriber, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return svc.repo.QuerySubscribers(ctx, QueryFilter{Status: st})
}

func (svc *Service) Get(ctx context.Context, id int64) (Subscriber, error) {
	return svc.repo.GetSubscriber(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ns NewSubscriber) (Subscriber, error) {
	ns.Clean()
	if err := ns.Validate(svc.validator); err != nil {
		return Subscriber{}, err
	}
	if err := svc.repo.CheckUniqueness(ctx, ns.Email, ns.DNI.String, 0); err != nil {
		return Subscriber{}, err
	}

	id, err := svc.repo.CreateSubscriber(ctx, Subscriber{
		Name:             ns.Name,
		Email:            ns.Email,
		Phone:            ns.Phone,
		DNI:              ns.DNI,
		BirthDate:        ns.BirthDate,
		Address:          ns.Address,
		EmergencyContact: ns.EmergencyContact,
		EmergencyPhone:   ns.EmergencyPhone,
		Notes:            ns.Notes,
		Status:           StatusPending,
		CreatedAt:        core.NowFunc().UTC(),
	})
	if err != nil {
		return Subscriber{}, err
	}
	return svc.repo.GetSubscriber(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, us UpdateSubscriber) (Subscriber, error) {
	orig, err := svc.repo.GetSubscriber(ctx, id)
	if err != nil {
		return Subscriber{}, err
	}

	us.Clean(orig)
	if err = us.Validate(svc.validator); err != nil {
		return Subscriber{}, err
	}
	if err = transitions.Check(orig.Status, us.Status); err != nil {
		return Subscriber{}, err
	}
	if err = svc.repo.CheckUniqueness(ctx, us.Email, us.DNI.String, orig.ID); err != nil {
		return Subscriber{}, err
	}

	sub := orig
	sub.Name = us.Name
	sub.Email = us.Email
	sub.Phone = us.Phone
	sub.DNI = us.DNI
	sub.BirthDate = us.BirthDate
	sub.Address = us.Address
	sub.EmergencyContact = us.EmergencyContact
	sub.EmergencyPhone = us.EmergencyPhone
	sub.Notes = us.Notes
	sub.Status = us.Status
	return svc.save(ctx, sub)
}

// Delete deactivates the subscriber. The row and its subscriptions are kept.
func (svc *Service) Delete(ctx context.Context, id int64) (Subscriber, error) {
	sub, err := svc.repo.GetSubscriber(ctx, id)
	if err != nil {
		return Subscriber{}, err
	}
	if err = transitions.Check(sub.Status, StatusInactive); err != nil {
		return Subscriber{}, err
	}
	sub.Status = StatusInactive
	return svc.save(ctx, sub)
}

func (svc *Service) save(ctx context.Context, sub Subscriber) (Subscriber, error) {
	sub.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdateSubscriber(ctx, sub); err != nil {
		return Subscriber{}, err
	}
	return svc.repo.GetSubscriber(ctx, sub.ID)
}
