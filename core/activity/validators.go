package activity

import (
	"github.com/mundoacuatico/backend/core"
)

// NewActivity contains information needed to create a new Activity.
type NewActivity struct {
	Name         string      `json:"nombre" validate:"required,min=3,max=100"`
	Description  string      `json:"descripcion"`
	FormURL      string      `json:"form_url" validate:"max=500"`
	ImageURL     string      `json:"imagen_url" validate:"max=500"`
	MonthlyPrice core.Amount `json:"precio_mensual" validate:"required,gte=0,lte=99999999.99"`
	Status       Status      `json:"estado" validate:"oneof=Activa Inactiva"`
}

// Clean trims text fields and applies defaults: a missing (or unparseable) price is 0.00.
func (na *NewActivity) Clean() {
	na.Name = core.CleanString(na.Name)
	na.Description = core.CleanString(na.Description)
	na.FormURL = core.CleanString(na.FormURL)
	na.ImageURL = core.CleanString(na.ImageURL)
	if !na.MonthlyPrice.Valid {
		na.MonthlyPrice = core.NewAmount(0)
	}
	na.Status = Status(core.DefaultString(string(na.Status), string(StatusActive)))
}

func (na NewActivity) Validate(v *core.Validator) error {
	return v.Struct(na)
}

// UpdateActivity defines what information may be provided to modify an existing Activity.
// The whole record is replaced; blank estado and missing precio_mensual keep their current values.
type UpdateActivity struct {
	Name         string      `json:"nombre" validate:"required,min=3,max=100"`
	Description  string      `json:"descripcion"`
	FormURL      string      `json:"form_url" validate:"max=500"`
	ImageURL     string      `json:"imagen_url" validate:"max=500"`
	MonthlyPrice core.Amount `json:"precio_mensual" validate:"required,gte=0,lte=99999999.99"`
	Status       Status      `json:"estado" validate:"oneof=Activa Inactiva"`
}

func (ua *UpdateActivity) Clean(orig Activity) {
	ua.Name = core.CleanString(ua.Name)
	ua.Description = core.CleanString(ua.Description)
	ua.FormURL = core.CleanString(ua.FormURL)
	ua.ImageURL = core.CleanString(ua.ImageURL)
	if !ua.MonthlyPrice.Valid {
		ua.MonthlyPrice = core.NewAmount(orig.MonthlyPrice)
	}
	ua.Status = Status(core.DefaultString(string(ua.Status), string(orig.Status)))
}

func (ua UpdateActivity) Validate(v *core.Validator) error {
	return v.Struct(ua)
}
