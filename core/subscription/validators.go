package subscription

import (
	"github.com/mundoacuatico/backend/core"
)

// NewSubscription contains information needed to subscribe a Subscriber to a Schedule.
type NewSubscription struct {
	SubscriberID  core.Int      `json:"suscriptor_id" validate:"required"`
	ScheduleID    core.Int      `json:"horario_id" validate:"required"`
	Status        Status        `json:"estado" validate:"oneof=Activa Pendiente"`
	MonthlyAmount core.Amount   `json:"monto_mensual" validate:"required,gte=0,lte=99999999.99"`
	LastPayment   core.Date     `json:"fecha_ultimo_pago" validate:"omitempty,notfuture"`
	PaymentMethod PaymentMethod `json:"metodo_pago" validate:"oneof=Efectivo Transferencia Tarjeta"`
	Notes         string        `json:"observaciones"`
}

func (ns *NewSubscription) Clean() {
	ns.Status = Status(core.DefaultString(string(ns.Status), string(StatusActive)))
	ns.PaymentMethod = PaymentMethod(core.DefaultString(string(ns.PaymentMethod), string(PaymentCash)))
	ns.Notes = core.CleanString(ns.Notes)
}

func (ns NewSubscription) Validate(v *core.Validator) error {
	return v.Struct(ns)
}

// UpdateSubscription modifies a Subscription. The subscriber cannot change.
// Missing horario_id, estado, monto_mensual, metodo_pago and observaciones keep their current values;
// fecha_ultimo_pago is always replaced.
type UpdateSubscription struct {
	ScheduleID    core.Int      `json:"horario_id"`
	Status        Status        `json:"estado" validate:"oneof=Activa Pendiente Vencida Cancelada"`
	MonthlyAmount core.Amount   `json:"monto_mensual" validate:"required,gte=0,lte=99999999.99"`
	LastPayment   core.Date     `json:"fecha_ultimo_pago" validate:"omitempty,notfuture"`
	PaymentMethod PaymentMethod `json:"metodo_pago" validate:"oneof=Efectivo Transferencia Tarjeta"`
	Notes         *string       `json:"observaciones"`
}

func (us *UpdateSubscription) Clean(orig Subscription) {
	if us.ScheduleID.Or(0) == 0 {
		us.ScheduleID = core.NewInt(orig.ScheduleID)
	}
	us.Status = Status(core.DefaultString(string(us.Status), string(orig.Status)))
	if !us.MonthlyAmount.Valid {
		us.MonthlyAmount = core.NewAmount(orig.MonthlyAmount)
	}
	us.PaymentMethod = PaymentMethod(core.DefaultString(string(us.PaymentMethod), string(orig.PaymentMethod)))
	notes := orig.Notes
	if us.Notes != nil {
		notes = core.CleanString(*us.Notes)
	}
	us.Notes = &notes
}

func (us UpdateSubscription) Validate(v *core.Validator) error {
	return v.Struct(us)
}

// Payment is what "record a payment" accepts.
type Payment struct {
	LastPayment   core.Date     `json:"fecha_ultimo_pago" validate:"required,notfuture"`
	PaymentMethod PaymentMethod `json:"metodo_pago" validate:"oneof=Efectivo Transferencia Tarjeta"`
}

func (p *Payment) Clean() {
	p.PaymentMethod = PaymentMethod(core.DefaultString(string(p.PaymentMethod), string(PaymentCash)))
}

func (p Payment) Validate(v *core.Validator) error {
	return v.Struct(p)
}
