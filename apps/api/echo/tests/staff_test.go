package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/tests"
)

func Test_staffApi(t *testing.T) {
	a := setup(t)
	admin, token := a.adminToken(t)
	editor := testutil.CreateStaff(t, a.repos.Staff, "editor", "", staff.RoleEditor, true)
	gone := testutil.CreateStaff(t, a.repos.Staff, "gone", "", staff.RoleEditor, false)

	invalid := func(details ...string) []byte {
		return marshalObj(t, validationErr{Error: "Datos inválidos", Details: details})
	}

	a.run(t, httpTests{
		{name: "Active users", path: "/usuarios", wantData: marshalList(t, admin, editor)},
		{name: "Retrieve", path: "/usuarios/" + itoa(gone.ID), wantData: marshalObj(t, gone)},
		{name: "Retrieve (unknown)", path: "/usuarios/999", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "Usuario no encontrado"})},
		{
			name: "Short password", method: http.MethodPost, path: "/usuarios/agregar", wantCode: http.StatusBadRequest,
			body:     []byte(`{"usuario": "carla", "nombre": "Carla", "password": "abc"}`),
			wantData: invalid("La contraseña debe tener al menos 6 caracteres"),
		},
		{
			name: "Password like the username", method: http.MethodPost, path: "/usuarios/agregar", wantCode: http.StatusBadRequest,
			body:     []byte(`{"usuario": "carlagomez", "nombre": "Carla", "password": "carlagomez1"}`),
			wantData: invalid("La contraseña es demasiado parecida al usuario o al nombre"),
		},
		{
			name: "Bad username", method: http.MethodPost, path: "/usuarios/agregar", wantCode: http.StatusBadRequest,
			body:     []byte(`{"usuario": "carla gomez", "nombre": "Carla", "password": "Pileta#2024"}`),
			wantData: invalid("usuario solo puede contener letras, números y guiones bajos"),
		},
		{
			name: "Username too long", method: http.MethodPost, path: "/usuarios/agregar", wantCode: http.StatusBadRequest,
			body:     []byte(`{"usuario": "` + strings.Repeat("c", 51) + `", "nombre": "Carla", "password": "Pileta#2024"}`),
			wantData: invalid("usuario no puede exceder 50 caracteres"),
		},
		{
			name: "Username taken", method: http.MethodPost, path: "/usuarios/agregar", wantCode: http.StatusBadRequest,
			body:     []byte(`{"usuario": "EDITOR", "nombre": "Otro editor", "password": "Pileta#2024"}`),
			wantData: marshalObj(t, httpErr{Error: "El nombre de usuario ya está registrado"}),
		},
		{
			name: "Cannot deactivate themselves", method: http.MethodDelete, path: "/usuarios/eliminar/" + itoa(admin.ID), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "No puede desactivar su propia cuenta"}),
		},
		{
			name: "Not even through an update", method: http.MethodPut, path: "/usuarios/editar/" + itoa(admin.ID), wantCode: http.StatusBadRequest,
			body:     []byte(`{"usuario": "admin", "nombre": "Admin", "estado": "Inactivo"}`),
			wantData: marshalObj(t, httpErr{Error: "No puede desactivar su propia cuenta"}),
		},
	}.withToken(token))

	t.Run("Created as editor", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/usuarios/agregar", token, []byte(`{"usuario": " Carla ", "nombre": "Carla Gómez", "password": "Pileta#2024"}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "password")

		var usr staff.User
		decode(t, rec, &usr)
		assert.Equal(t, "carla", usr.Username)
		assert.Equal(t, staff.RoleEditor, usr.Role)
		assert.Equal(t, staff.StatusActive, usr.Status)

		// and can log in
		req, rec = newRequest(http.MethodPost, "/usuarios/login", []byte(`{"usuario": "carla", "password": "Pileta#2024"}`))
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("Deactivated user is locked out", func(t *testing.T) {
		editorToken := a.getToken(t, editor)

		req, rec := newAuthRequest(http.MethodDelete, "/usuarios/eliminar/"+itoa(editor.ID), token)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var usr staff.User
		decode(t, rec, &usr)
		assert.Equal(t, staff.StatusInactive, usr.Status)

		// tokens issued before are refused
		req, rec = newAuthRequest(http.MethodGet, "/noticias/todas", editorToken)
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		// and count as public on public routes
		req, rec = newAuthRequest(http.MethodGet, "/actividades", editorToken)
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Role change", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/usuarios/editar/"+itoa(gone.ID), token, []byte(`{"usuario": "gone", "nombre": "De vuelta", "rol": "Admin", "estado": "Activo"}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var usr staff.User
		decode(t, rec, &usr)
		assert.Equal(t, staff.RoleAdmin, usr.Role)
		assert.Equal(t, staff.StatusActive, usr.Status)
		assert.Equal(t, "De vuelta", usr.Name)
	})
}
