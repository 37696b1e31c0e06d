package news

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mundoacuatico/backend/core"
)

type Status string

const (
	StatusDraft     Status = "Borrador"
	StatusPublished Status = "Publicado"
	StatusArchived  Status = "Archivado"
)

var Statuses = []Status{StatusDraft, StatusPublished, StatusArchived}

func ParseStatus(s string) (Status, error) {
	st := Status(core.CleanString(s))
	if !core.OneOf(st, Statuses...) {
		return "", core.NewValidationError(core.ErrInvalidData, core.FieldError{
			Field: "estado",
			Error: "Estado no válido. Debe ser: Borrador, Publicado o Archivado",
		})
	}
	return st, nil
}

type Post struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"titulo" db:"titulo"`
	Body        string    `json:"contenido" db:"contenido"`
	ImageURL    string    `json:"imagen_url" db:"imagen_url"`
	Status      Status    `json:"estado" db:"estado"`
	PublishedOn core.Date `json:"fecha_publicacion" db:"fecha_publicacion"`
	CreatedAt   time.Time `json:"fecha_creacion" db:"fecha_creacion"`
	UpdatedAt   null.Time `json:"fecha_actualizacion" db:"fecha_actualizacion"`
}

func (p Post) IsPublished() bool {
	return p.Status == StatusPublished
}

type QueryFilter struct {
	Status Status
	// ByPublication orders by fecha_publicacion (newest first) instead of fecha_creacion.
	ByPublication bool
}
