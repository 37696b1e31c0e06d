package activity

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Status string

const (
	StatusActive   Status = "Activa"
	StatusInactive Status = "Inactiva"
)

var Statuses = []Status{StatusActive, StatusInactive}

type Activity struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"nombre" db:"nombre"`
	Description  string    `json:"descripcion" db:"descripcion"`
	FormURL      string    `json:"form_url" db:"form_url"`
	ImageURL     string    `json:"imagen_url" db:"imagen_url"`
	MonthlyPrice float64   `json:"precio_mensual" db:"precio_mensual"`
	Status       Status    `json:"estado" db:"estado"`
	CreatedAt    time.Time `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt    null.Time `json:"fecha_actualizacion" db:"fecha_actualizacion"`

	// read-only
	ScheduleCount     int `json:"cantidad_horarios" db:"cantidad_horarios"`           // active schedules
	SubscriptionCount int `json:"cantidad_suscripciones" db:"cantidad_suscripciones"` // active subscriptions on them
}

func (a Activity) IsActive() bool {
	return a.Status == StatusActive
}

type QueryFilter struct {
	Status Status // empty means any
}
