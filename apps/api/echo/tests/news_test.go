package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/news"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/tests"
)

func date(t *testing.T, s string) core.Date {
	d, err := core.ParseDate(s)
	require.NoError(t, err)
	return d
}

func Test_newsApi_query(t *testing.T) {
	a := setup(t)
	editor := testutil.CreateStaff(t, a.repos.Staff, "editor", "", staff.RoleEditor, true)
	token := a.getToken(t, editor)

	now := time.Now()
	old := testutil.CreatePost(t, a.repos.News, "Torneo de verano", news.StatusPublished, date(t, "2024-01-15"), now.Add(-3*time.Hour))
	recent := testutil.CreatePost(t, a.repos.News, "Nueva pileta climatizada", news.StatusPublished, date(t, "2024-06-01"), now.Add(-4*time.Hour))
	draft := testutil.CreatePost(t, a.repos.News, "Horarios de invierno", news.StatusDraft, core.Date{}, now.Add(-2*time.Hour))
	archived := testutil.CreatePost(t, a.repos.News, "Cierre por feriado", news.StatusArchived, date(t, "2023-12-24"), now.Add(-1*time.Hour))

	notFound := marshalObj(t, httpErr{Error: "Noticia no encontrada"})

	a.run(t, httpTests{
		{name: "Public sees published, newest publication first", path: "/noticias", wantData: marshalList(t, recent, old)},
		{name: "Public retrieve", path: "/noticias/" + itoa(old.ID), wantData: marshalObj(t, old)},
		{name: "Public cannot see drafts", path: "/noticias/" + itoa(draft.ID), wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Public cannot see archived", path: "/noticias/" + itoa(archived.ID), wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Staff sees drafts", path: "/noticias/" + itoa(draft.ID), token: token, wantData: marshalObj(t, draft)},
		{name: "All needs auth", path: "/noticias/todas", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "All, newest first", path: "/noticias/todas", token: token, wantData: marshalList(t, archived, draft, old, recent)},
		{name: "By status", path: "/noticias/estado/Borrador", token: token, wantData: marshalList(t, draft)},
		{
			name: "By status (unknown)", path: "/noticias/estado/Oculto", token: token, wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"Estado no válido. Debe ser: Borrador, Publicado o Archivado"}}),
		},
	})
}

func Test_newsApi_lifecycle(t *testing.T) {
	a := setup(t)
	editor := testutil.CreateStaff(t, a.repos.Staff, "editor", "", staff.RoleEditor, true)
	token := a.getToken(t, editor)

	a.run(t, httpTests{
		{
			name: "Title too short", body: []byte(`{"titulo": "Hola", "contenido": "Contenido suficiente"}`), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"titulo debe tener al menos 5 caracteres"}}),
		},
		{
			name: "Bad image URL", body: []byte(`{"titulo": "Torneo", "contenido": "Contenido suficiente", "imagen_url": "pileta"}`), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"imagen_url debe ser una URL válida"}}),
		},
	}.withPath("/noticias/agregar", http.MethodPost).withToken(token))

	var post news.Post
	t.Run("Written as a draft", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/noticias/agregar", token, []byte(`{"titulo": "Torneo de otoño", "contenido": "Inscripciones abiertas hasta el viernes"}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		decode(t, rec, &post)
		assert.Equal(t, news.StatusDraft, post.Status)
		assert.False(t, post.PublishedOn.Valid)
	})

	t.Run("Published today", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/noticias/publicar/"+itoa(post.ID), token)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got news.Post
		decode(t, rec, &got)
		assert.Equal(t, news.StatusPublished, got.Status)
		assert.Equal(t, core.Today(), got.PublishedOn)
	})

	t.Run("Publishing again keeps the date", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/noticias/publicar/"+itoa(post.ID), token, []byte(`{"fecha_publicacion": "2020-01-01"}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got news.Post
		decode(t, rec, &got)
		assert.Equal(t, core.Today(), got.PublishedOn)

		// now public
		req, rec = newRequest(http.MethodGet, "/noticias/"+itoa(post.ID))
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Archived", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/noticias/eliminar/"+itoa(post.ID), token)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got news.Post
		decode(t, rec, &got)
		assert.Equal(t, news.StatusArchived, got.Status)
	})

	a.run(t, httpTests{
		{
			name: "Archived cannot be published", method: http.MethodPut, path: "/noticias/publicar/" + itoa(post.ID), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "Una noticia archivada no puede publicarse"}),
		},
		{
			name: "Archived is final", method: http.MethodPut, path: "/noticias/editar/" + itoa(post.ID), wantCode: http.StatusBadRequest,
			body:     []byte(`{"titulo": "Torneo de otoño", "contenido": "Inscripciones abiertas hasta el viernes", "estado": "Borrador"}`),
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"No se puede cambiar el estado de Archivado a Borrador"}}),
		},
	}.withToken(token))

	a.run(t, httpTests{
		{name: "Hidden from the public", path: "/noticias/" + itoa(post.ID), wantCode: http.StatusNotFound},
	})
}
