package sqlxrepos

import (
	"context"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/subscriber"
)

const subscriberFrom = `
SELECT su.id, su.nombre, su.email, su.telefono, su.dni, su.fecha_nacimiento, su.direccion,
       su.contacto_emergencia, su.telefono_emergencia, su.observaciones, su.estado,
       su.fecha_creacion, su.fecha_actualizacion,
       COALESCE(string_agg(
           a.nombre || ' - ' || h.dias_semana || ' ' || left(h.hora_inicio::text, 5) || '-' || left(h.hora_fin::text, 5),
           '; ' ORDER BY a.nombre
       ), '') AS actividades_suscritas
FROM suscriptores su
LEFT JOIN suscripciones s ON s.suscriptor_id = su.id AND s.estado = 'Activa'
LEFT JOIN horarios h ON h.id = s.horario_id
LEFT JOIN actividades a ON a.id = h.actividad_id`

var subscriberColumns = []string{
	"nombre", "email", "telefono", "dni", "fecha_nacimiento", "direccion", "contacto_emergencia",
	"telefono_emergencia", "observaciones", "estado", "fecha_creacion", "fecha_actualizacion",
}

type subscriberRepository struct {
	crud[subscriber.Subscriber]
}

var _ subscriber.Repository = (*subscriberRepository)(nil) // interface compliance check

func NewSubscriberRepository(db core.DBExecutor) *subscriberRepository {
	return &subscriberRepository{crud[subscriber.Subscriber]{
		db:       db,
		table:    "suscriptores",
		from:     subscriberFrom,
		groupBy:  "GROUP BY su.id",
		name:     "subscriber",
		notFound: subscriber.ErrNotFound,
	}}
}

func (repo subscriberRepository) CheckUniqueness(ctx context.Context, email, dni string, excludedID int64, exec ...core.DBExecutor) error {
	exe := repo.getExec(exec)

	found, err := exists(ctx, exe, repo.table, newWhere().add("email = ? AND id <> ?", email, excludedID))
	if err != nil {
		return err
	}
	if found {
		return subscriber.ErrEmailExists
	}

	if dni != "" {
		found, err = exists(ctx, exe, repo.table, newWhere().add("dni = ? AND id <> ?", dni, excludedID))
		if err != nil {
			return err
		}
		if found {
			return subscriber.ErrDNIExists
		}
	}
	return nil
}

func (repo subscriberRepository) QuerySubscribers(ctx context.Context, filter subscriber.QueryFilter, exec ...core.DBExecutor) ([]subscriber.Subscriber, error) {
	cond := newWhere()
	if filter.Status != "" {
		cond = cond.add("su.estado = ?", filter.Status)
	}
	return repo.list(ctx, exec, cond, "su.estado, su.nombre, su.id")
}

func (repo subscriberRepository) GetSubscriber(ctx context.Context, id int64, exec ...core.DBExecutor) (subscriber.Subscriber, error) {
	return repo.getByID(ctx, exec, "su", id)
}

func (repo subscriberRepository) CreateSubscriber(ctx context.Context, sub subscriber.Subscriber, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, sub, subscriberColumns...)
}

func (repo subscriberRepository) UpdateSubscriber(ctx context.Context, sub subscriber.Subscriber, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, sub, subscriberColumns...)
}
