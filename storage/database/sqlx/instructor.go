package sqlxrepos

import (
	"context"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/instructor"
)

const instructorFrom = `
SELECT p.id, p.nombre, p.especialidad, p.telefono, p.email, p.horario, p.estado,
       p.fecha_creacion, p.fecha_actualizacion,
       COUNT(DISTINCT h.id) AS cantidad_horarios,
       COALESCE(string_agg(DISTINCT a.nombre, ', '), '') AS actividades
FROM profesores p
LEFT JOIN horarios h ON h.profesor_id = p.id AND h.activo
LEFT JOIN actividades a ON a.id = h.actividad_id AND a.estado = 'Activa'`

var instructorColumns = []string{
	"nombre", "especialidad", "telefono", "email", "horario", "estado", "fecha_creacion", "fecha_actualizacion",
}

type instructorRepository struct {
	crud[instructor.Instructor]
}

var _ instructor.Repository = (*instructorRepository)(nil) // interface compliance check

func NewInstructorRepository(db core.DBExecutor) *instructorRepository {
	return &instructorRepository{crud[instructor.Instructor]{
		db:       db,
		table:    "profesores",
		from:     instructorFrom,
		groupBy:  "GROUP BY p.id",
		name:     "instructor",
		notFound: instructor.ErrNotFound,
	}}
}

func (repo instructorRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedID int64, exec ...core.DBExecutor) error {
	if email == "" {
		return nil
	}
	found, err := exists(ctx, repo.getExec(exec), repo.table, newWhere().add("email = ? AND id <> ?", email, excludedID))
	if err != nil {
		return err
	}
	if found {
		return instructor.ErrEmailExists
	}
	return nil
}

func (repo instructorRepository) QueryInstructors(ctx context.Context, filter instructor.QueryFilter, exec ...core.DBExecutor) ([]instructor.Instructor, error) {
	cond := newWhere()
	if filter.Status != "" {
		cond = cond.add("p.estado = ?", filter.Status)
	}
	return repo.list(ctx, exec, cond, "p.fecha_creacion DESC, p.id DESC")
}

func (repo instructorRepository) GetInstructor(ctx context.Context, id int64, exec ...core.DBExecutor) (instructor.Instructor, error) {
	return repo.getByID(ctx, exec, "p", id)
}

func (repo instructorRepository) CreateInstructor(ctx context.Context, inst instructor.Instructor, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, inst, instructorColumns...)
}

func (repo instructorRepository) UpdateInstructor(ctx context.Context, inst instructor.Instructor, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, inst, instructorColumns...)
}
