package subscriber

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mundoacuatico/backend/core"
)

type Status string

const (
	StatusActive   Status = "Activo"
	StatusPending  Status = "Pendiente"
	StatusInactive Status = "Inactivo"
)

var Statuses = []Status{StatusActive, StatusPending, StatusInactive}

func ParseStatus(s string) (Status, error) {
	st := Status(core.CleanString(s))
	if !core.OneOf(st, Statuses...) {
		return "", core.NewValidationError(core.ErrInvalidData, core.FieldError{
			Field: "estado",
			Error: "Estado no válido. Debe ser: Activo, Pendiente o Inactivo",
		})
	}
	return st, nil
}

type Subscriber struct {
	ID               int64       `json:"id" db:"id"`
	Name             string      `json:"nombre" db:"nombre"`
	Email            string      `json:"email" db:"email"`
	Phone            string      `json:"telefono" db:"telefono"`
	DNI              null.String `json:"dni" db:"dni"`
	BirthDate        core.Date   `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Address          string      `json:"direccion" db:"direccion"`
	EmergencyContact string      `json:"contacto_emergencia" db:"contacto_emergencia"`
	EmergencyPhone   string      `json:"telefono_emergencia" db:"telefono_emergencia"`
	Notes            string      `json:"observaciones" db:"observaciones"`
	Status           Status      `json:"estado" db:"estado"`
	CreatedAt        time.Time   `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt        null.Time   `json:"fecha_actualizacion" db:"fecha_actualizacion"`

	// read-only: "<activity> - <days> <start>-<end>" of each active subscription, "; " separated
	SubscribedActivities string `json:"actividades_suscritas" db:"actividades_suscritas"`
}

type QueryFilter struct {
	Status Status
}
