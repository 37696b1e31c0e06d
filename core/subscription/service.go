package subscription

import (
	"context"

	"github.com/mundoacuatico/backend/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("Suscripción no encontrada")
	ErrScheduleNotFound   = core.NewNotFoundError("Horario no encontrado")
	ErrScheduleInactive   = core.NewConflictError("El horario no está activo")
	ErrNoCapacity         = core.NewConflictError("No hay cupo disponible en este horario")
	ErrAlreadySubscribed  = core.NewConflictError("El suscriptor ya está inscrito en este horario")
	ErrCancelledPayment   = core.NewConflictError("No se puede registrar un pago en una suscripción cancelada")
	errSubscriberNotFound = core.FieldError{Field: "suscriptor_id", Error: "El suscriptor seleccionado no existe"}

	transitions = core.Transitions[Status]{
		StatusPending:   {StatusActive, StatusCancelled},
		StatusActive:    {StatusOverdue, StatusCancelled},
		StatusOverdue:   {StatusActive, StatusCancelled},
		StatusCancelled: {StatusActive},
	}
)

type (
	Repository interface {
		SubscriberExists(ctx context.Context, id int64, exec ...core.DBExecutor) (bool, error)
		// LockSchedule locks the schedule row until the end of the transaction exec belongs to,
		// then counts its seats. Returns ErrScheduleNotFound if there is no such schedule.
		LockSchedule(ctx context.Context, scheduleID int64, exec ...core.DBExecutor) (Seats, error)
		// HasOpenSubscription reports whether the subscriber holds an Activa or Pendiente subscription
		// (other than excludedID) on the schedule.
		HasOpenSubscription(ctx context.Context, subscriberID, scheduleID, excludedID int64, exec ...core.DBExecutor) (bool, error)
		// QuerySubscriptions lists subscriptions ordered by estado then newest first.
		QuerySubscriptions(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Subscription, error)
		GetSubscription(ctx context.Context, id int64, exec ...core.DBExecutor) (Subscription, error)
		CreateSubscription(ctx context.Context, sub Subscription, exec ...core.DBExecutor) (int64, error)
		UpdateSubscription(ctx context.Context, sub Subscription, exec ...core.DBExecutor) error
	}

	Service struct {
		repo      Repository
		tx        core.Transactor
		validator *core.Validator
	}
)

func NewService(repo Repository, tx core.Transactor, validator *core.Validator) *Service {
	return &Service{repo: repo, tx: tx, validator: validator}
}

func (svc *Service) List(ctx context.Context) ([]Subscription, error) {
	return svc.repo.QuerySubscriptions(ctx, QueryFilter{})
}

func (svc *Service) ListBySubscriber(ctx context.Context, subscriberID int64) ([]Subscription, error) {
	return svc.repo.QuerySubscriptions(ctx, QueryFilter{SubscriberID: subscriberID})
}

func (svc *Service) ListByStatus(ctx context.Context, status string) ([]Subscription, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return svc.repo.QuerySubscriptions(ctx, QueryFilter{Status: st})
}

func (svc *Service) Get(ctx context.Context, id int64) (Subscription, error) {
	return svc.repo.GetSubscription(ctx, id)
}

// checkSeat must run inside a transaction: the schedule stays locked until it ends,
// so concurrent subscriptions to the same schedule are checked one after the other.
//   - capacity: the subscription takes a seat, the schedule must not be full
//   - duplicate: the subscriber must not already hold an open subscription on the schedule
func (svc *Service) checkSeat(ctx context.Context, exec core.DBExecutor, sub Subscription, capacity, duplicate bool) error {
	seats, err := svc.repo.LockSchedule(ctx, sub.ScheduleID, exec)
	if err != nil {
		return err
	}
	if !seats.Active {
		return ErrScheduleInactive
	}
	if capacity && seats.Full() {
		return ErrNoCapacity
	}
	if duplicate {
		dup, err := svc.repo.HasOpenSubscription(ctx, sub.SubscriberID, sub.ScheduleID, sub.ID, exec)
		if err != nil {
			return err
		}
		if dup {
			return ErrAlreadySubscribed
		}
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewSubscription) (Subscription, error) {
	ns.Clean()
	if err := ns.Validate(svc.validator); err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		SubscriberID:  ns.SubscriberID.Int64,
		ScheduleID:    ns.ScheduleID.Int64,
		Status:        ns.Status,
		MonthlyAmount: ns.MonthlyAmount.Float64,
		LastPayment:   ns.LastPayment,
		PaymentMethod: ns.PaymentMethod,
		Notes:         ns.Notes,
		CreatedAt:     core.NowFunc().UTC(),
	}

	err := svc.tx.InTx(ctx, func(exec core.DBExecutor) error {
		ok, err := svc.repo.SubscriberExists(ctx, sub.SubscriberID, exec)
		if err != nil {
			return err
		}
		if !ok {
			return core.NewValidationError(core.ErrInvalidData, errSubscriberNotFound)
		}
		if err = svc.checkSeat(ctx, exec, sub, sub.Status == StatusActive, true); err != nil {
			return err
		}
		sub.ID, err = svc.repo.CreateSubscription(ctx, sub, exec)
		return err
	})
	if err != nil {
		return Subscription{}, err
	}
	return svc.repo.GetSubscription(ctx, sub.ID)
}

func (svc *Service) Update(ctx context.Context, id int64, us UpdateSubscription) (Subscription, error) {
	orig, err := svc.repo.GetSubscription(ctx, id)
	if err != nil {
		return Subscription{}, err
	}

	us.Clean(orig)
	if err = us.Validate(svc.validator); err != nil {
		return Subscription{}, err
	}
	if err = transitions.Check(orig.Status, us.Status); err != nil {
		return Subscription{}, err
	}

	sub := orig
	sub.ScheduleID = us.ScheduleID.Int64
	sub.Status = us.Status
	sub.MonthlyAmount = us.MonthlyAmount.Float64
	sub.LastPayment = us.LastPayment
	sub.PaymentMethod = us.PaymentMethod
	sub.Notes = *us.Notes
	sub.UpdatedAt.SetValid(core.NowFunc().UTC())

	// a seat is taken when moving to another schedule or coming back to Activa
	moved := sub.ScheduleID != orig.ScheduleID
	capacity := sub.Status == StatusActive && (moved || orig.Status != StatusActive)
	duplicate := sub.Status.IsOpen() && (moved || !orig.Status.IsOpen())

	err = svc.tx.InTx(ctx, func(exec core.DBExecutor) error {
		if moved || capacity || duplicate {
			if err := svc.checkSeat(ctx, exec, sub, capacity, duplicate); err != nil {
				return err
			}
		}
		return svc.repo.UpdateSubscription(ctx, sub, exec)
	})
	if err != nil {
		return Subscription{}, err
	}
	return svc.repo.GetSubscription(ctx, sub.ID)
}

// Delete cancels the subscription, which frees its seat. The row is kept.
func (svc *Service) Delete(ctx context.Context, id int64) (Subscription, error) {
	sub, err := svc.repo.GetSubscription(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if err = transitions.Check(sub.Status, StatusCancelled); err != nil {
		return Subscription{}, err
	}
	sub.Status = StatusCancelled
	return svc.save(ctx, sub)
}

// RecordPayment sets the payment date and method and makes the subscription Activa again,
// which needs a free seat unless it already was. Cancelled subscriptions must be reactivated through Update first.
func (svc *Service) RecordPayment(ctx context.Context, id int64, p Payment) (Subscription, error) {
	sub, err := svc.repo.GetSubscription(ctx, id)
	if err != nil {
		return Subscription{}, err
	}

	p.Clean()
	if err = p.Validate(svc.validator); err != nil {
		return Subscription{}, err
	}
	if sub.Status == StatusCancelled {
		return Subscription{}, ErrCancelledPayment
	}

	orig := sub
	sub.LastPayment = p.LastPayment
	sub.PaymentMethod = p.PaymentMethod
	sub.Status = StatusActive
	sub.UpdatedAt.SetValid(core.NowFunc().UTC())

	// coming back to Activa takes a seat, as in Update
	capacity := orig.Status != StatusActive
	duplicate := !orig.Status.IsOpen()

	err = svc.tx.InTx(ctx, func(exec core.DBExecutor) error {
		if capacity || duplicate {
			if err := svc.checkSeat(ctx, exec, sub, capacity, duplicate); err != nil {
				return err
			}
		}
		return svc.repo.UpdateSubscription(ctx, sub, exec)
	})
	if err != nil {
		return Subscription{}, err
	}
	return svc.repo.GetSubscription(ctx, sub.ID)
}

func (svc *Service) save(ctx context.Context, sub Subscription) (Subscription, error) {
	sub.UpdatedAt.SetValid(core.NowFunc().UTC())
	if err := svc.repo.UpdateSubscription(ctx, sub); err != nil {
		return Subscription{}, err
	}
	return svc.repo.GetSubscription(ctx, sub.ID)
}
