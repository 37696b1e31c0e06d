package instructor

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type (
	Status string
	Shift  string
)

const (
	StatusActive   Status = "Activo"
	StatusInactive Status = "Inactivo"

	ShiftMorning   Shift = "Mañana"
	ShiftAfternoon Shift = "Tarde"
	ShiftEvening   Shift = "Noche"

	DefaultSpecialty = "General"
)

var (
	Statuses = []Status{StatusActive, StatusInactive}
	Shifts   = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}
)

type Instructor struct {
	ID        int64       `json:"id" db:"id"`
	Name      string      `json:"nombre" db:"nombre"`
	Specialty string      `json:"especialidad" db:"especialidad"`
	Phone     string      `json:"telefono" db:"telefono"`
	Email     null.String `json:"email" db:"email"`
	Shift     Shift       `json:"horario" db:"horario"`
	Status    Status      `json:"estado" db:"estado"`
	CreatedAt time.Time   `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt null.Time   `json:"fecha_actualizacion" db:"fecha_actualizacion"`

	// read-only
	ScheduleCount int    `json:"cantidad_horarios" db:"cantidad_horarios"` // active schedules
	Activities    string `json:"actividades" db:"actividades"`             // names of the active activities taught, comma separated
}

func (i Instructor) IsActive() bool {
	return i.Status == StatusActive
}

type QueryFilter struct {
	Status Status
}
