package subscription

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mundoacuatico/backend/core"
)

type (
	Status        string
	PaymentMethod string
)

const (
	StatusActive    Status = "Activa"
	StatusPending   Status = "Pendiente"
	StatusOverdue   Status = "Vencida"
	StatusCancelled Status = "Cancelada"

	PaymentCash     PaymentMethod = "Efectivo"
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentCard     PaymentMethod = "Tarjeta"
)

var (
	Statuses       = []Status{StatusActive, StatusPending, StatusOverdue, StatusCancelled}
	PaymentMethods = []PaymentMethod{PaymentCash, PaymentTransfer, PaymentCard}
)

func ParseStatus(s string) (Status, error) {
	st := Status(core.CleanString(s))
	if !core.OneOf(st, Statuses...) {
		return "", core.NewValidationError(core.ErrInvalidData, core.FieldError{
			Field: "estado",
			Error: "Estado no válido. Debe ser: Activa, Pendiente, Vencida o Cancelada",
		})
	}
	return st, nil
}

// IsOpen reports whether the status still holds (or waits for) a seat.
func (s Status) IsOpen() bool {
	return s == StatusActive || s == StatusPending
}

type Subscription struct {
	ID            int64         `json:"id" db:"id"`
	SubscriberID  int64         `json:"suscriptor_id" db:"suscriptor_id"`
	ScheduleID    int64         `json:"horario_id" db:"horario_id"`
	Status        Status        `json:"estado" db:"estado"`
	MonthlyAmount float64       `json:"monto_mensual" db:"monto_mensual"`
	LastPayment   core.Date     `json:"fecha_ultimo_pago" db:"fecha_ultimo_pago"`
	PaymentMethod PaymentMethod `json:"metodo_pago" db:"metodo_pago"`
	Notes         string        `json:"observaciones" db:"observaciones"`
	CreatedAt     time.Time     `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt     null.Time     `json:"fecha_actualizacion" db:"fecha_actualizacion"`

	// read-only
	SubscriberName  string `json:"suscriptor_nombre" db:"suscriptor_nombre"`
	SubscriberEmail string `json:"suscriptor_email" db:"suscriptor_email"`
	SubscriberPhone string `json:"suscriptor_telefono" db:"suscriptor_telefono"`
	ActivityName    string `json:"actividad_nombre" db:"actividad_nombre"`
	Days            string `json:"dias_semana" db:"dias_semana"`
	StartTime       string `json:"hora_inicio" db:"hora_inicio"`
	EndTime         string `json:"hora_fin" db:"hora_fin"`
	InstructorName  string `json:"profesor_nombre" db:"profesor_nombre"`
}

// Seats is a schedule's capacity as seen while its row is locked.
type Seats struct {
	Capacity int
	Active   bool // schedule flag
	Taken    int  // Activa subscriptions
}

func (s Seats) Full() bool {
	return s.Taken >= s.Capacity
}

type QueryFilter struct {
	SubscriberID int64
	Status       Status
}
