package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/mundoacuatico/backend/core"
)

var (
	afterTimeTag  = "aftertime"
	afterTimeText = "La hora de inicio debe ser anterior a la hora de fin"
)

// NewSchedule contains information needed to create a new Schedule.
type NewSchedule struct {
	ActivityID   core.Int `json:"actividad_id" validate:"required"`
	InstructorID core.Int `json:"profesor_id" validate:"required"`
	Days         string   `json:"dias_semana" validate:"required,min=5,max=50"`
	StartTime    string   `json:"hora_inicio" validate:"required,clock"`
	EndTime      string   `json:"hora_fin" validate:"required,clock"`
	Capacity     core.Int `json:"cupo_maximo" validate:"gte=1,lte=50"`
	Notes        string   `json:"observaciones" validate:"max=200"`
	Active       *bool    `json:"activo"`
}

// Clean trims text fields, normalises times to HH:MM:SS and defaults a missing capacity to DefaultCapacity.
func (ns *NewSchedule) Clean() {
	ns.Days = core.CleanString(ns.Days)
	ns.StartTime = core.NormalizeClock(ns.StartTime)
	ns.EndTime = core.NormalizeClock(ns.EndTime)
	ns.Notes = core.CleanString(ns.Notes)
	ns.Capacity = defaultCapacity(ns.Capacity)
	if ns.Active == nil {
		active := true
		ns.Active = &active
	}
}

func (ns NewSchedule) Validate(v *core.Validator) error {
	return v.Struct(ns)
}

// UpdateSchedule replaces a Schedule. A missing activo keeps the current flag.
type UpdateSchedule struct {
	ActivityID   core.Int `json:"actividad_id" validate:"required"`
	InstructorID core.Int `json:"profesor_id" validate:"required"`
	Days         string   `json:"dias_semana" validate:"required,min=5,max=50"`
	StartTime    string   `json:"hora_inicio" validate:"required,clock"`
	EndTime      string   `json:"hora_fin" validate:"required,clock"`
	Capacity     core.Int `json:"cupo_maximo" validate:"gte=1,lte=50"`
	Notes        string   `json:"observaciones" validate:"max=200"`
	Active       *bool    `json:"activo"`
}

func (us *UpdateSchedule) Clean(orig Schedule) {
	us.Days = core.CleanString(us.Days)
	us.StartTime = core.NormalizeClock(us.StartTime)
	us.EndTime = core.NormalizeClock(us.EndTime)
	us.Notes = core.CleanString(us.Notes)
	us.Capacity = defaultCapacity(us.Capacity)
	if us.Active == nil {
		active := orig.Active
		us.Active = &active
	}
}

func (us UpdateSchedule) Validate(v *core.Validator) error {
	return v.Struct(us)
}

// defaultCapacity turns a missing (blank, unparseable or 0) capacity into DefaultCapacity.
func defaultCapacity(c core.Int) core.Int {
	if c.Or(0) == 0 {
		return core.NewInt(DefaultCapacity)
	}
	return c
}

func registerValidators(v *core.Validator) {
	v.RegisterStructValidation(scheduleStructValidation, NewSchedule{}, UpdateSchedule{})
	v.RegisterTranslation(afterTimeTag, afterTimeText)
}

// scheduleStructValidation checks that hora_fin is strictly after hora_inicio.
func scheduleStructValidation(sl validator.StructLevel) {
	var start, end string
	switch sch := sl.Current().Interface().(type) {
	case NewSchedule:
		start, end = sch.StartTime, sch.EndTime
	case UpdateSchedule:
		start, end = sch.StartTime, sch.EndTime
	}
	// both are HH:MM:SS once cleaned: they compare as strings
	if len(start) == 8 && len(end) == 8 && start >= end {
		sl.ReportError(end, "hora_fin", "EndTime", afterTimeTag, "")
	}
}
