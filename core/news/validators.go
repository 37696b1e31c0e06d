package news

import (
	"github.com/mundoacuatico/backend/core"
)

// NewPost contains information needed to write a new Post.
type NewPost struct {
	Title       string    `json:"titulo" validate:"required,min=5,max=200"`
	Body        string    `json:"contenido" validate:"required,min=10"`
	ImageURL    string    `json:"imagen_url" validate:"omitempty,max=500,url"`
	Status      Status    `json:"estado" validate:"oneof=Borrador Publicado Archivado"`
	PublishedOn core.Date `json:"fecha_publicacion"`
}

func (np *NewPost) Clean() {
	np.Title = core.CleanString(np.Title)
	np.Body = core.CleanString(np.Body)
	np.ImageURL = core.CleanString(np.ImageURL)
	np.Status = Status(core.DefaultString(string(np.Status), string(StatusDraft)))
	if np.Status == StatusPublished && !np.PublishedOn.Valid {
		np.PublishedOn = core.Today()
	}
}

func (np NewPost) Validate(v *core.Validator) error {
	return v.Struct(np)
}

// UpdatePost replaces a Post. Blank estado keeps the current one.
type UpdatePost struct {
	Title       string    `json:"titulo" validate:"required,min=5,max=200"`
	Body        string    `json:"contenido" validate:"required,min=10"`
	ImageURL    string    `json:"imagen_url" validate:"omitempty,max=500,url"`
	Status      Status    `json:"estado" validate:"oneof=Borrador Publicado Archivado"`
	PublishedOn core.Date `json:"fecha_publicacion"`
}

func (up *UpdatePost) Clean(orig Post) {
	up.Title = core.CleanString(up.Title)
	up.Body = core.CleanString(up.Body)
	up.ImageURL = core.CleanString(up.ImageURL)
	up.Status = Status(core.DefaultString(string(up.Status), string(orig.Status)))
	if up.Status == StatusPublished && !up.PublishedOn.Valid {
		if orig.IsPublished() && orig.PublishedOn.Valid {
			up.PublishedOn = orig.PublishedOn
		} else {
			up.PublishedOn = core.Today()
		}
	}
}

func (up UpdatePost) Validate(v *core.Validator) error {
	return v.Struct(up)
}

// PublishPost is what "publish" accepts: an optional publication date (today if missing).
type PublishPost struct {
	PublishedOn core.Date `json:"fecha_publicacion"`
}

// publishable is re-checked on publish, whatever was valid when the post was written.
type publishable struct {
	Title string `json:"titulo" validate:"required,min=5"`
	Body  string `json:"contenido" validate:"required,min=10"`
}
