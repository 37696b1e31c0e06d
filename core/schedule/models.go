package schedule

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const (
	DefaultCapacity = 20
	MinCapacity     = 1
	MaxCapacity     = 50
)

type Schedule struct {
	ID           int64     `json:"id" db:"id"`
	ActivityID   int64     `json:"actividad_id" db:"actividad_id"`
	InstructorID int64     `json:"profesor_id" db:"profesor_id"`
	Days         string    `json:"dias_semana" db:"dias_semana"`
	StartTime    string    `json:"hora_inicio" db:"hora_inicio"` // HH:MM:SS
	EndTime      string    `json:"hora_fin" db:"hora_fin"`       // HH:MM:SS
	Capacity     int       `json:"cupo_maximo" db:"cupo_maximo"`
	Notes        string    `json:"observaciones" db:"observaciones"`
	Active       bool      `json:"activo" db:"activo"`
	CreatedAt    time.Time `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt    null.Time `json:"fecha_actualizacion" db:"fecha_actualizacion"`

	// read-only
	ActivityName   string `json:"actividad_nombre" db:"actividad_nombre"`
	InstructorName string `json:"profesor_nombre" db:"profesor_nombre"`
	Subscriptions  int    `json:"suscripciones_actuales" db:"suscripciones_actuales"` // active subscriptions
	AvailableSeats int    `json:"cupos_disponibles" db:"cupos_disponibles"`
}

type QueryFilter struct {
	ActivityID int64
	ActiveOnly bool
}
