package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/subscription"
)

const scheduleFrom = `
SELECT h.id, h.actividad_id, h.profesor_id, h.dias_semana,
       h.hora_inicio::text AS hora_inicio, h.hora_fin::text AS hora_fin,
       h.cupo_maximo, h.observaciones, h.activo, h.fecha_creacion, h.fecha_actualizacion,
       a.nombre AS actividad_nombre,
       p.nombre AS profesor_nombre,
       COUNT(s.id) AS suscripciones_actuales,
       h.cupo_maximo - COUNT(s.id) AS cupos_disponibles
FROM horarios h
JOIN actividades a ON a.id = h.actividad_id
JOIN profesores p ON p.id = h.profesor_id
LEFT JOIN suscripciones s ON s.horario_id = h.id AND s.estado = 'Activa'`

var scheduleColumns = []string{
	"actividad_id", "profesor_id", "dias_semana", "hora_inicio", "hora_fin", "cupo_maximo", "observaciones", "activo",
	"fecha_creacion", "fecha_actualizacion",
}

type scheduleRepository struct {
	crud[schedule.Schedule]
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db core.DBExecutor) *scheduleRepository {
	return &scheduleRepository{crud[schedule.Schedule]{
		db:       db,
		table:    "horarios",
		from:     scheduleFrom,
		groupBy:  "GROUP BY h.id, a.nombre, p.nombre",
		name:     "schedule",
		notFound: schedule.ErrNotFound,
	}}
}

func (repo scheduleRepository) ActivityExists(ctx context.Context, id int64, exec ...core.DBExecutor) (bool, error) {
	return exists(ctx, repo.getExec(exec), "actividades", newWhere().add("id = ?", id))
}

func (repo scheduleRepository) InstructorExists(ctx context.Context, id int64, exec ...core.DBExecutor) (bool, error) {
	return exists(ctx, repo.getExec(exec), "profesores", newWhere().add("id = ?", id))
}

func (repo scheduleRepository) QuerySchedules(ctx context.Context, filter schedule.QueryFilter, exec ...core.DBExecutor) ([]schedule.Schedule, error) {
	cond := newWhere()
	if filter.ActivityID != 0 {
		cond = cond.add("h.actividad_id = ?", filter.ActivityID)
	}
	if filter.ActiveOnly {
		cond = cond.add("h.activo")
	}
	return repo.list(ctx, exec, cond, "h.activo DESC, h.dias_semana, h.hora_inicio, h.id")
}

func (repo scheduleRepository) GetSchedule(ctx context.Context, id int64, exec ...core.DBExecutor) (schedule.Schedule, error) {
	return repo.getByID(ctx, exec, "h", id)
}

func (repo scheduleRepository) CreateSchedule(ctx context.Context, sch schedule.Schedule, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, sch, scheduleColumns...)
}

func (repo scheduleRepository) UpdateSchedule(ctx context.Context, sch schedule.Schedule, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, sch, scheduleColumns...)
}

func (repo scheduleRepository) LockSeats(ctx context.Context, id int64, exec ...core.DBExecutor) (int, error) {
	exe := repo.getExec(exec)

	var locked int64
	q := exe.Rebind("SELECT id FROM horarios WHERE id = ? FOR UPDATE")
	if err := exe.GetContext(ctx, &locked, q, id); err != nil {
		return 0, classifyErr(err, schedule.ErrNotFound, "locking schedule")
	}

	var taken int
	q = exe.Rebind("SELECT COUNT(*) FROM suscripciones WHERE horario_id = ? AND estado = ?")
	if err := exe.GetContext(ctx, &taken, q, id, subscription.StatusActive); err != nil {
		return 0, errors.Wrap(err, "counting seats")
	}
	return taken, nil
}
