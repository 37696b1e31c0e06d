package instructor

import (
	"github.com/volatiletech/null/v8"

	"github.com/mundoacuatico/backend/core"
)

// NewInstructor contains information needed to create a new Instructor.
type NewInstructor struct {
	Name      string      `json:"nombre" validate:"notblank,max=100"`
	Specialty string      `json:"especialidad" validate:"max=100"`
	Phone     string      `json:"telefono" validate:"required,min=7,max=20"`
	Email     null.String `json:"email" validate:"omitempty,max=100,email_at"`
	Shift     Shift       `json:"horario" validate:"oneof=Mañana Tarde Noche"`
	Status    Status      `json:"estado" validate:"oneof=Activo Inactivo"`
}

// Clean trims text fields and applies defaults (before validation, so a defaulted value is still checked).
func (ni *NewInstructor) Clean() {
	ni.Name = core.CleanString(ni.Name)
	ni.Specialty = core.DefaultString(ni.Specialty, DefaultSpecialty)
	ni.Phone = core.CleanString(ni.Phone)
	ni.Email = cleanEmail(ni.Email)
	ni.Shift = Shift(core.DefaultString(string(ni.Shift), string(ShiftMorning)))
	ni.Status = Status(core.DefaultString(string(ni.Status), string(StatusActive)))
}

func (ni NewInstructor) Validate(v *core.Validator) error {
	return v.Struct(ni)
}

// UpdateInstructor replaces an Instructor. Blank estado keeps the current one.
type UpdateInstructor struct {
	Name      string      `json:"nombre" validate:"notblank,max=100"`
	Specialty string      `json:"especialidad" validate:"max=100"`
	Phone     string      `json:"telefono" validate:"required,min=7,max=20"`
	Email     null.String `json:"email" validate:"omitempty,max=100,email_at"`
	Shift     Shift       `json:"horario" validate:"oneof=Mañana Tarde Noche"`
	Status    Status      `json:"estado" validate:"oneof=Activo Inactivo"`
}

func (ui *UpdateInstructor) Clean(orig Instructor) {
	ui.Name = core.CleanString(ui.Name)
	ui.Specialty = core.DefaultString(ui.Specialty, DefaultSpecialty)
	ui.Phone = core.CleanString(ui.Phone)
	ui.Email = cleanEmail(ui.Email)
	ui.Shift = Shift(core.DefaultString(string(ui.Shift), string(ShiftMorning)))
	ui.Status = Status(core.DefaultString(string(ui.Status), string(orig.Status)))
}

func (ui UpdateInstructor) Validate(v *core.Validator) error {
	return v.Struct(ui)
}

// cleanEmail lowers the email, a blank one is stored as NULL.
func cleanEmail(email null.String) null.String {
	s := core.CleanString(email.String, true /* lower */)
	return null.NewString(s, s != "")
}
