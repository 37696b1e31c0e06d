package sqlxrepos

import (
	"context"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
)

const activityFrom = `
SELECT a.id, a.nombre, a.descripcion, a.form_url, a.imagen_url, a.precio_mensual, a.estado,
       a.fecha_creacion, a.fecha_actualizacion,
       COUNT(DISTINCT h.id) AS cantidad_horarios,
       COUNT(s.id) AS cantidad_suscripciones
FROM actividades a
LEFT JOIN horarios h ON h.actividad_id = a.id AND h.activo
LEFT JOIN suscripciones s ON s.horario_id = h.id AND s.estado = 'Activa'`

var activityColumns = []string{
	"nombre", "descripcion", "form_url", "imagen_url", "precio_mensual", "estado", "fecha_creacion", "fecha_actualizacion",
}

type activityRepository struct {
	crud[activity.Activity]
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db core.DBExecutor) *activityRepository {
	return &activityRepository{crud[activity.Activity]{
		db:       db,
		table:    "actividades",
		from:     activityFrom,
		groupBy:  "GROUP BY a.id",
		name:     "activity",
		notFound: activity.ErrNotFound,
	}}
}

func (repo activityRepository) QueryActivities(ctx context.Context, filter activity.QueryFilter, exec ...core.DBExecutor) ([]activity.Activity, error) {
	cond := newWhere()
	if filter.Status != "" {
		cond = cond.add("a.estado = ?", filter.Status)
	}
	return repo.list(ctx, exec, cond, "a.fecha_creacion DESC, a.id DESC")
}

func (repo activityRepository) GetActivity(ctx context.Context, id int64, exec ...core.DBExecutor) (activity.Activity, error) {
	return repo.getByID(ctx, exec, "a", id)
}

func (repo activityRepository) CreateActivity(ctx context.Context, act activity.Activity, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, act, activityColumns...)
}

func (repo activityRepository) UpdateActivity(ctx context.Context, act activity.Activity, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, act, activityColumns...)
}
