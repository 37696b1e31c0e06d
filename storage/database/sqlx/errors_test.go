package sqlxrepos

import (
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/subscriber"
)

func Test_classifyErr(t *testing.T) {
	pqErr := func(code, constraint string) error {
		return errors.Wrap(&pq.Error{Code: pq.ErrorCode(code), Constraint: constraint}, "exec")
	}

	tests := []struct {
		name     string
		err      error
		notFound error
		want     error
	}{
		{name: "nil"},
		{name: "no rows", err: sql.ErrNoRows, notFound: activity.ErrNotFound, want: activity.ErrNotFound},
		{name: "known unique constraint", err: pqErr(pgerrcode.UniqueViolation, "suscriptores_dni_key"), want: subscriber.ErrDNIExists},
		{name: "other unique constraint", err: pqErr(pgerrcode.UniqueViolation, "lol_key"), want: errDuplicate},
		{name: "foreign key", err: pqErr(pgerrcode.ForeignKeyViolation, "horarios_actividad_id_fkey"), want: errInvalidReference},
		{name: "check", err: pqErr(pgerrcode.CheckViolation, "horarios_capacidad_check"), want: errConstraint},
		{name: "not null", err: pqErr(pgerrcode.NotNullViolation, ""), want: errConstraint},
		{name: "value too long", err: pqErr(pgerrcode.StringDataRightTruncationDataException, ""), want: errConstraint},
		{name: "numeric overflow", err: pqErr(pgerrcode.NumericValueOutOfRange, ""), want: errConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyErr(tt.err, tt.notFound, "querying"))
		})
	}

	t.Run("anything else is internal", func(t *testing.T) {
		err := classifyErr(sql.ErrNoRows, nil, "querying")
		assert.EqualError(t, err, "querying: sql: no rows in result set")
		assert.False(t, core.IsNotFound(err))
		assert.False(t, core.IsConflict(classifyErr(pqErr(pgerrcode.DeadlockDetected, ""), nil, "updating")))
	})
}
