package sqlxrepos

import (
	"database/sql"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/core/subscriber"
)

var (
	errDuplicate        = core.NewConflictError("El registro ya existe")
	errInvalidReference = core.NewConflictError("Referencia no válida")
	errConstraint       = core.NewConflictError("Los datos no cumplen con las restricciones de la base de datos")

	// unique constraint name -> conflict reported when it fires
	uniqueViolations = map[string]error{
		"profesores_email_key":   instructor.ErrEmailExists,
		"suscriptores_email_key": subscriber.ErrEmailExists,
		"suscriptores_dni_key":   subscriber.ErrDNIExists,
		"usuarios_usuario_key":   staff.ErrUsernameExists,
	}
)

// classifyErr maps driver errors to core error kinds:
//   - sql.ErrNoRows -> notFound (when given)
//   - unique violation -> the conflict of the constraint that fired
//   - foreign key, check and not-null violations -> conflicts
//   - values too long or out of range for their column -> conflicts
//
// Anything else is wrapped with msg and left to be reported as an internal error.
func classifyErr(err error, notFound error, msg string) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgerrcode.UniqueViolation:
			if cErr, ok := uniqueViolations[pqErr.Constraint]; ok {
				return cErr
			}
			return errDuplicate
		case pgerrcode.ForeignKeyViolation:
			return errInvalidReference
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
			pgerrcode.StringDataRightTruncationDataException, pgerrcode.NumericValueOutOfRange:
			return errConstraint
		}
	}
	return errors.Wrap(err, msg)
}
