package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/subscription"
)

const subscriptionFrom = `
SELECT s.id, s.suscriptor_id, s.horario_id, s.estado, s.monto_mensual, s.fecha_ultimo_pago, s.metodo_pago,
       s.observaciones, s.fecha_creacion, s.fecha_actualizacion,
       su.nombre AS suscriptor_nombre,
       su.email AS suscriptor_email,
       su.telefono AS suscriptor_telefono,
       a.nombre AS actividad_nombre,
       h.dias_semana,
       h.hora_inicio::text AS hora_inicio,
       h.hora_fin::text AS hora_fin,
       p.nombre AS profesor_nombre
FROM suscripciones s
JOIN suscriptores su ON su.id = s.suscriptor_id
JOIN horarios h ON h.id = s.horario_id
JOIN actividades a ON a.id = h.actividad_id
JOIN profesores p ON p.id = h.profesor_id`

var subscriptionColumns = []string{
	"suscriptor_id", "horario_id", "estado", "monto_mensual", "fecha_ultimo_pago", "metodo_pago", "observaciones",
	"fecha_creacion", "fecha_actualizacion",
}

type subscriptionRepository struct {
	crud[subscription.Subscription]
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db core.DBExecutor) *subscriptionRepository {
	return &subscriptionRepository{crud[subscription.Subscription]{
		db:       db,
		table:    "suscripciones",
		from:     subscriptionFrom,
		name:     "subscription",
		notFound: subscription.ErrNotFound,
	}}
}

func (repo subscriptionRepository) SubscriberExists(ctx context.Context, id int64, exec ...core.DBExecutor) (bool, error) {
	return exists(ctx, repo.getExec(exec), "suscriptores", newWhere().add("id = ?", id))
}

func (repo subscriptionRepository) LockSchedule(ctx context.Context, scheduleID int64, exec ...core.DBExecutor) (subscription.Seats, error) {
	exe := repo.getExec(exec)

	var row struct {
		Capacity int  `db:"cupo_maximo"`
		Active   bool `db:"activo"`
	}
	q := exe.Rebind("SELECT cupo_maximo, activo FROM horarios WHERE id = ? FOR UPDATE")
	if err := exe.GetContext(ctx, &row, q, scheduleID); err != nil {
		return subscription.Seats{}, classifyErr(err, subscription.ErrScheduleNotFound, "locking schedule")
	}

	seats := subscription.Seats{Capacity: row.Capacity, Active: row.Active}
	q = exe.Rebind("SELECT COUNT(*) FROM suscripciones WHERE horario_id = ? AND estado = ?")
	if err := exe.GetContext(ctx, &seats.Taken, q, scheduleID, subscription.StatusActive); err != nil {
		return subscription.Seats{}, errors.Wrap(err, "counting seats")
	}
	return seats, nil
}

func (repo subscriptionRepository) HasOpenSubscription(ctx context.Context, subscriberID, scheduleID, excludedID int64, exec ...core.DBExecutor) (bool, error) {
	cond := newWhere().
		add("suscriptor_id = ? AND horario_id = ? AND id <> ?", subscriberID, scheduleID, excludedID).
		add("estado IN (?, ?)", subscription.StatusActive, subscription.StatusPending)
	return exists(ctx, repo.getExec(exec), repo.table, cond)
}

func (repo subscriptionRepository) QuerySubscriptions(ctx context.Context, filter subscription.QueryFilter, exec ...core.DBExecutor) ([]subscription.Subscription, error) {
	cond := newWhere()
	if filter.SubscriberID != 0 {
		cond = cond.add("s.suscriptor_id = ?", filter.SubscriberID)
	}
	if filter.Status != "" {
		cond = cond.add("s.estado = ?", filter.Status)
	}
	return repo.list(ctx, exec, cond, "s.estado, s.fecha_creacion DESC, s.id DESC")
}

func (repo subscriptionRepository) GetSubscription(ctx context.Context, id int64, exec ...core.DBExecutor) (subscription.Subscription, error) {
	return repo.getByID(ctx, exec, "s", id)
}

func (repo subscriptionRepository) CreateSubscription(ctx context.Context, sub subscription.Subscription, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, sub, subscriptionColumns...)
}

func (repo subscriptionRepository) UpdateSubscription(ctx context.Context, sub subscription.Subscription, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, sub, subscriptionColumns...)
}
