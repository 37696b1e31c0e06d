package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
	"github.com/mundoacuatico/backend/tests"
)

func Test_scheduleApi_query(t *testing.T) {
	a := setup(t)
	_, adminToken := a.adminToken(t)

	swim := testutil.CreateActivity(t, a.repos.Activities, "Natación", 8000, activity.StatusActive)
	aqua := testutil.CreateActivity(t, a.repos.Activities, "Aquagym", 6500, activity.StatusActive)
	ana := testutil.CreateInstructor(t, a.repos.Instructors, "Ana", "", instructor.StatusActive)

	morning := testutil.CreateSchedule(t, a.repos.Schedules, swim.ID, ana.ID, "Lunes, Miércoles", "08:00", 10, true)
	evening := testutil.CreateSchedule(t, a.repos.Schedules, swim.ID, ana.ID, "Lunes, Miércoles", "19:00", 10, true)
	closed := testutil.CreateSchedule(t, a.repos.Schedules, swim.ID, ana.ID, "Sábado", "10:00", 10, false)
	aquaSch := testutil.CreateSchedule(t, a.repos.Schedules, aqua.ID, ana.ID, "Martes, Jueves", "09:00", 2, true)

	// seats are taken by Activa subscriptions only
	sub := testutil.CreateSubscriber(t, a.repos.Subscribers, "Lucía", "lucia@test.com", subscriber.StatusActive)
	other := testutil.CreateSubscriber(t, a.repos.Subscribers, "Mateo", "mateo@test.com", subscriber.StatusActive)
	testutil.CreateSubscription(t, a.repos.Subscriptions, sub.ID, aquaSch.ID, subscription.StatusActive)
	testutil.CreateSubscription(t, a.repos.Subscriptions, other.ID, aquaSch.ID, subscription.StatusPending)
	aquaSch, err := a.repos.Schedules.GetSchedule(ctxb, aquaSch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, aquaSch.Subscriptions)
	assert.Equal(t, 1, aquaSch.AvailableSeats)
	assert.Equal(t, "Aquagym", aquaSch.ActivityName)
	assert.Equal(t, "Ana", aquaSch.InstructorName)

	a.run(t, httpTests{
		{name: "Public sees active ones", path: "/horarios", wantData: marshalList(t, morning, evening, aquaSch)},
		{name: "Staff sees inactive ones last", path: "/horarios", token: adminToken, wantData: marshalList(t, morning, evening, aquaSch, closed)},
		{name: "By activity", path: "/horarios/actividad/" + itoa(swim.ID), wantData: marshalList(t, morning, evening)},
		{name: "By activity (none)", path: "/horarios/actividad/999", wantData: marshalList(t)},
		{name: "By activity (not a number)", path: "/horarios/actividad/abc", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "Actividad no encontrada"})},
		{name: "Retrieve", path: "/horarios/" + itoa(aquaSch.ID), wantData: marshalObj(t, aquaSch)},
		{name: "Retrieve (unknown)", path: "/horarios/999", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "Horario no encontrado"})},
	})
}

func Test_scheduleApi_create(t *testing.T) {
	a := setup(t)
	_, adminToken := a.adminToken(t)

	swim := testutil.CreateActivity(t, a.repos.Activities, "Natación", 8000, activity.StatusActive)
	ana := testutil.CreateInstructor(t, a.repos.Instructors, "Ana", "", instructor.StatusActive)

	body := func(extra string) []byte {
		return []byte(fmt.Sprintf(
			`{"actividad_id": %d, "profesor_id": %d, "dias_semana": "Lunes, Miércoles", "hora_inicio": "08:00", "hora_fin": "09:00"%s}`,
			swim.ID, ana.ID, extra,
		))
	}
	invalid := func(details ...string) []byte {
		return marshalObj(t, validationErr{Error: "Datos inválidos", Details: details})
	}

	a.run(t, httpTests{
		{name: "Capacity over max", body: body(`, "cupo_maximo": 51`), wantData: invalid("cupo_maximo debe ser menor o igual a 50")},
		{name: "Negative capacity", body: body(`, "cupo_maximo": -1`), wantData: invalid("cupo_maximo debe ser mayor o igual a 1")},
		{name: "Bad clock", body: body(`, "hora_inicio": "8am"`), wantData: invalid("hora_inicio debe ser una hora válida (HH:MM)")},
		{name: "End before start", body: body(`, "hora_inicio": "10:00"`), wantData: invalid("La hora de inicio debe ser anterior a la hora de fin")},
		{
			name: "Unknown references", body: []byte(`{"actividad_id": 998, "profesor_id": 999, "dias_semana": "Lunes", "hora_inicio": "08:00", "hora_fin": "09:00"}`),
			wantData: invalid("La actividad seleccionada no existe", "El profesor seleccionado no existe"),
		},
	}.withPath("/horarios/agregar", http.MethodPost).withToken(adminToken).withCode(http.StatusBadRequest))

	t.Run("Created with defaults", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/horarios/agregar", adminToken, body(""))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var sch schedule.Schedule
		decode(t, rec, &sch)
		assert.Equal(t, "08:00:00", sch.StartTime)
		assert.Equal(t, "09:00:00", sch.EndTime)
		assert.Equal(t, schedule.DefaultCapacity, sch.Capacity)
		assert.Equal(t, schedule.DefaultCapacity, sch.AvailableSeats)
		assert.True(t, sch.Active)
		assert.Equal(t, "Natación", sch.ActivityName)
		assert.Equal(t, "Ana", sch.InstructorName)
	})

	t.Run("Form-encoded numbers", func(t *testing.T) {
		for name, raw := range map[string]string{
			"string ids":    `{"actividad_id": "%d", "profesor_id": "%d", "dias_semana": "Martes", "hora_inicio": "10:00", "hora_fin": "11:00", "cupo_maximo": ""}`,
			"blank capacity": `{"actividad_id": %d, "profesor_id": %d, "dias_semana": "Martes", "hora_inicio": "10:00", "hora_fin": "11:00", "cupo_maximo": null}`,
		} {
			req, rec := newAuthRequest(http.MethodPost, "/horarios/agregar", adminToken, []byte(fmt.Sprintf(raw, swim.ID, ana.ID)))
			a.ServeHTTP(rec, req)
			require.Equal(t, http.StatusCreated, rec.Code, name+": "+rec.Body.String())

			var sch schedule.Schedule
			decode(t, rec, &sch)
			assert.Equal(t, swim.ID, sch.ActivityID, name)
			assert.Equal(t, schedule.DefaultCapacity, sch.Capacity, name)
		}

		req, rec := newAuthRequest(http.MethodPost, "/horarios/agregar", adminToken, []byte(fmt.Sprintf(
			`{"actividad_id": "%d", "profesor_id": "%d", "dias_semana": "Martes", "hora_inicio": "12:00", "hora_fin": "13:00", "cupo_maximo": "12"}`,
			swim.ID, ana.ID,
		)))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var sch schedule.Schedule
		decode(t, rec, &sch)
		assert.Equal(t, 12, sch.Capacity)

		req, rec = newAuthRequest(http.MethodPost, "/horarios/agregar", adminToken, []byte(`{"actividad_id": "", "profesor_id": null, "dias_semana": "Martes", "hora_inicio": "12:00", "hora_fin": "13:00"}`))
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, string(invalid("actividad_id es obligatorio", "profesor_id es obligatorio")), rec.Body.String())
	})
}

func Test_scheduleApi_updateAndDelete(t *testing.T) {
	a := setup(t)
	_, adminToken := a.adminToken(t)

	swim := testutil.CreateActivity(t, a.repos.Activities, "Natación", 8000, activity.StatusActive)
	ana := testutil.CreateInstructor(t, a.repos.Instructors, "Ana", "", instructor.StatusActive)
	sch := testutil.CreateSchedule(t, a.repos.Schedules, swim.ID, ana.ID, "Lunes", "08:00", 10, true)
	path := "/horarios/editar/" + itoa(sch.ID)

	t.Run("Update keeps a missing active flag", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, adminToken, []byte(fmt.Sprintf(
			`{"actividad_id": %d, "profesor_id": %d, "dias_semana": "Lunes, Viernes", "hora_inicio": "18:30", "hora_fin": "19:30", "cupo_maximo": 15}`,
			swim.ID, ana.ID,
		)))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got schedule.Schedule
		decode(t, rec, &got)
		assert.Equal(t, "Lunes, Viernes", got.Days)
		assert.Equal(t, "18:30:00", got.StartTime)
		assert.Equal(t, 15, got.Capacity)
		assert.True(t, got.Active)
	})

	t.Run("Capacity cannot drop below taken seats", func(t *testing.T) {
		lucia := testutil.CreateSubscriber(t, a.repos.Subscribers, "Lucía", "lucia@test.com", subscriber.StatusActive)
		mateo := testutil.CreateSubscriber(t, a.repos.Subscribers, "Mateo", "mateo@test.com", subscriber.StatusActive)
		testutil.CreateSubscription(t, a.repos.Subscriptions, lucia.ID, sch.ID, subscription.StatusActive)
		testutil.CreateSubscription(t, a.repos.Subscriptions, mateo.ID, sch.ID, subscription.StatusActive)

		body := func(capacity int) []byte {
			return []byte(fmt.Sprintf(
				`{"actividad_id": %d, "profesor_id": %d, "dias_semana": "Lunes, Viernes", "hora_inicio": "18:30", "hora_fin": "19:30", "cupo_maximo": %d}`,
				swim.ID, ana.ID, capacity,
			))
		}
		a.run(t, httpTests{
			{
				name: "Below", body: body(1), wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, httpErr{Error: "El cupo máximo no puede ser menor que las suscripciones activas del horario"}),
			},
			{name: "Exactly the taken seats", body: body(2)},
		}.withPath(path, http.MethodPut).withToken(adminToken))

		got, err := a.repos.Schedules.GetSchedule(ctxb, sch.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Capacity)
		assert.Zero(t, got.AvailableSeats)
	})

	t.Run("Delete deactivates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/horarios/eliminar/"+itoa(sch.ID), adminToken)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got schedule.Schedule
		decode(t, rec, &got)
		assert.False(t, got.Active)

		req, rec = newRequest(http.MethodGet, "/horarios/actividad/"+itoa(swim.ID))
		a.ServeHTTP(rec, req)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}
