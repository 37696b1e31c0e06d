package sqlxrepos

import (
	"context"
	"time"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/staff"
)

const staffFrom = `
SELECT u.id, u.usuario, u.nombre, u.password_hash, u.rol, u.estado, u.ultimo_acceso, u.fecha_creacion, u.fecha_actualizacion
FROM usuarios u`

var staffColumns = []string{
	"usuario", "nombre", "password_hash", "rol", "estado", "ultimo_acceso", "fecha_creacion", "fecha_actualizacion",
}

type staffRepository struct {
	crud[staff.User]
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db core.DBExecutor) *staffRepository {
	return &staffRepository{crud[staff.User]{
		db:       db,
		table:    "usuarios",
		from:     staffFrom,
		name:     "user",
		notFound: staff.ErrNotFound,
	}}
}

func (repo staffRepository) CheckUsernameUniqueness(ctx context.Context, username string, excludedID int64, exec ...core.DBExecutor) error {
	found, err := exists(ctx, repo.getExec(exec), repo.table, newWhere().add("usuario = ? AND id <> ?", username, excludedID))
	if err != nil {
		return err
	}
	if found {
		return staff.ErrUsernameExists
	}
	return nil
}

func (repo staffRepository) QueryUsers(ctx context.Context, filter staff.QueryFilter, exec ...core.DBExecutor) ([]staff.User, error) {
	cond := newWhere()
	if filter.Status != "" {
		cond = cond.add("u.estado = ?", filter.Status)
	}
	return repo.list(ctx, exec, cond, "u.nombre, u.id")
}

func (repo staffRepository) GetUser(ctx context.Context, id int64, exec ...core.DBExecutor) (staff.User, error) {
	return repo.getByID(ctx, exec, "u", id)
}

func (repo staffRepository) GetUserByUsername(ctx context.Context, username string, exec ...core.DBExecutor) (staff.User, error) {
	return repo.get(ctx, exec, newWhere().add("u.usuario = ?", username))
}

func (repo staffRepository) CreateUser(ctx context.Context, usr staff.User, exec ...core.DBExecutor) (int64, error) {
	return repo.insert(ctx, exec, usr, staffColumns...)
}

func (repo staffRepository) UpdateUser(ctx context.Context, usr staff.User, exec ...core.DBExecutor) error {
	return repo.update(ctx, exec, usr, staffColumns...)
}

func (repo staffRepository) SetLastLogin(ctx context.Context, id int64, at time.Time, exec ...core.DBExecutor) error {
	row := struct {
		ID        int64     `db:"id"`
		LastLogin time.Time `db:"ultimo_acceso"`
	}{ID: id, LastLogin: at.UTC()}
	return repo.update(ctx, exec, row, "ultimo_acceso")
}
