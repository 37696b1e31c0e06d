package subscriber

import (
	"github.com/volatiletech/null/v8"

	"github.com/mundoacuatico/backend/core"
)

var minAgeText = "El suscriptor debe tener al menos {1} años"

// NewSubscriber contains information needed to register a new Subscriber. New subscribers are always Pendiente.
type NewSubscriber struct {
	Name             string      `json:"nombre" validate:"required,min=2,max=100"`
	Email            string      `json:"email" validate:"required,max=100,email_at"`
	Phone            string      `json:"telefono" validate:"required,min=7,max=20"`
	DNI              null.String `json:"dni" validate:"omitempty,min=7,max=20"`
	BirthDate        core.Date   `json:"fecha_nacimiento" validate:"required,pastdate,minage=5"`
	Address          string      `json:"direccion" validate:"max=200"`
	EmergencyContact string      `json:"contacto_emergencia" validate:"max=100"`
	EmergencyPhone   string      `json:"telefono_emergencia" validate:"omitempty,min=7,max=20"`
	Notes            string      `json:"observaciones"`
}

func (ns *NewSubscriber) Clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.DNI = cleanDNI(ns.DNI)
	ns.Address = core.CleanString(ns.Address)
	ns.EmergencyContact = core.CleanString(ns.EmergencyContact)
	ns.EmergencyPhone = core.CleanString(ns.EmergencyPhone)
	ns.Notes = core.CleanString(ns.Notes)
}

func (ns NewSubscriber) Validate(v *core.Validator) error {
	return v.Struct(ns)
}

// UpdateSubscriber replaces a Subscriber. Blank estado keeps the current one.
type UpdateSubscriber struct {
	Name             string      `json:"nombre" validate:"required,min=2,max=100"`
	Email            string      `json:"email" validate:"required,max=100,email_at"`
	Phone            string      `json:"telefono" validate:"required,min=7,max=20"`
	DNI              null.String `json:"dni" validate:"omitempty,min=7,max=20"`
	BirthDate        core.Date   `json:"fecha_nacimiento" validate:"required,pastdate,minage=5"`
	Address          string      `json:"direccion" validate:"max=200"`
	EmergencyContact string      `json:"contacto_emergencia" validate:"max=100"`
	EmergencyPhone   string      `json:"telefono_emergencia" validate:"omitempty,min=7,max=20"`
	Notes            string      `json:"observaciones"`
	Status           Status      `json:"estado" validate:"oneof=Activo Pendiente Inactivo"`
}

func (us *UpdateSubscriber) Clean(orig Subscriber) {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.CleanString(us.Phone)
	us.DNI = cleanDNI(us.DNI)
	us.Address = core.CleanString(us.Address)
	us.EmergencyContact = core.CleanString(us.EmergencyContact)
	us.EmergencyPhone = core.CleanString(us.EmergencyPhone)
	us.Notes = core.CleanString(us.Notes)
	us.Status = Status(core.DefaultString(string(us.Status), string(orig.Status)))
}

func (us UpdateSubscriber) Validate(v *core.Validator) error {
	return v.Struct(us)
}

// cleanDNI trims the DNI, a blank one is stored as NULL.
func cleanDNI(dni null.String) null.String {
	s := core.CleanString(dni.String)
	return null.NewString(s, s != "")
}

func registerValidators(v *core.Validator) {
	v.RegisterTranslation("minage", minAgeText, true)
}
