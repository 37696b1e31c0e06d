package tests

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/tests"
)

func Test_instructorApi(t *testing.T) {
	a := setup(t)
	_, token := a.adminToken(t)

	now := time.Now()
	ana := testutil.CreateInstructor(t, a.repos.Instructors, "Ana", "ana@test.com", instructor.StatusActive, now.Add(-2*time.Hour))
	luis := testutil.CreateInstructor(t, a.repos.Instructors, "Luis", "", instructor.StatusInactive, now.Add(-1*time.Hour))

	swim := testutil.CreateActivity(t, a.repos.Activities, "Natación", 8000, activity.StatusActive)
	aqua := testutil.CreateActivity(t, a.repos.Activities, "Aquagym", 6500, activity.StatusActive)
	polo := testutil.CreateActivity(t, a.repos.Activities, "Waterpolo", 9000, activity.StatusInactive)
	testutil.CreateSchedule(t, a.repos.Schedules, swim.ID, ana.ID, "Lunes", "08:00", 10, true)
	testutil.CreateSchedule(t, a.repos.Schedules, swim.ID, ana.ID, "Martes", "08:00", 10, true)
	testutil.CreateSchedule(t, a.repos.Schedules, aqua.ID, ana.ID, "Jueves", "08:00", 10, true)
	testutil.CreateSchedule(t, a.repos.Schedules, polo.ID, ana.ID, "Viernes", "08:00", 10, true)
	testutil.CreateSchedule(t, a.repos.Schedules, aqua.ID, ana.ID, "Sábado", "08:00", 10, false)

	ana, err := a.repos.Instructors.GetInstructor(ctxb, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, ana.ScheduleCount)
	assert.Equal(t, "Aquagym, Natación", ana.Activities)

	a.run(t, httpTests{
		{name: "Public sees active ones", path: "/profesores", wantData: marshalList(t, ana)},
		{name: "Staff sees everything, newest first", path: "/profesores", token: token, wantData: marshalList(t, luis, ana)},
		{name: "Retrieve (unknown)", path: "/profesores/999", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "Profesor no encontrado"})},
		{
			name: "Phone required", method: http.MethodPost, path: "/profesores/agregar", token: token, wantCode: http.StatusBadRequest,
			body:     []byte(`{"nombre": "Carla"}`),
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"telefono es obligatorio"}}),
		},
		{
			name: "Email taken", method: http.MethodPost, path: "/profesores/agregar", token: token, wantCode: http.StatusBadRequest,
			body:     []byte(`{"nombre": "Carla", "telefono": "1155667788", "email": "ANA@test.com"}`),
			wantData: marshalObj(t, httpErr{Error: "El email ya está registrado"}),
		},
		{
			name: "Phone too long", method: http.MethodPost, path: "/profesores/agregar", token: token, wantCode: http.StatusBadRequest,
			body:     []byte(`{"nombre": "Carla", "telefono": "` + strings.Repeat("1", 21) + `"}`),
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"telefono no puede exceder 20 caracteres"}}),
		},
		{
			name: "Name and email too long", method: http.MethodPost, path: "/profesores/agregar", token: token, wantCode: http.StatusBadRequest,
			body:     []byte(`{"nombre": "` + strings.Repeat("ñ", 101) + `", "telefono": "1155667788", "email": "` + strings.Repeat("c", 95) + `@test.com"}`),
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"nombre no puede exceder 100 caracteres", "email no puede exceder 100 caracteres"}}),
		},
		{
			name: "Unknown shift", method: http.MethodPost, path: "/profesores/agregar", token: token, wantCode: http.StatusBadRequest,
			body:     []byte(`{"nombre": "Carla", "telefono": "1155667788", "horario": "Madrugada"}`),
			wantData: marshalObj(t, validationErr{Error: "Datos inválidos", Details: []string{"horario debe ser uno de: Mañana, Tarde, Noche"}}),
		},
	})

	t.Run("Created with defaults", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/profesores/agregar", token, []byte(`{"nombre": "Carla", "telefono": "1155667788", "email": " "}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var inst instructor.Instructor
		decode(t, rec, &inst)
		assert.Equal(t, instructor.DefaultSpecialty, inst.Specialty)
		assert.Equal(t, instructor.ShiftMorning, inst.Shift)
		assert.Equal(t, instructor.StatusActive, inst.Status)
		assert.False(t, inst.Email.Valid)
	})

	t.Run("Reactivated, then deactivated", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/profesores/editar/"+itoa(luis.ID), token,
			[]byte(`{"nombre": "Luis", "telefono": "1122334455", "horario": "Noche", "estado": "Activo"}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var inst instructor.Instructor
		decode(t, rec, &inst)
		assert.Equal(t, instructor.ShiftEvening, inst.Shift)
		assert.Equal(t, instructor.StatusActive, inst.Status)

		req, rec = newAuthRequest(http.MethodDelete, "/profesores/eliminar/"+itoa(luis.ID), token)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		decode(t, rec, &inst)
		assert.Equal(t, instructor.StatusInactive, inst.Status)
	})
}
