package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundoacuatico/backend/apps/api/echo"
	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/tests"
)

func Test_home(t *testing.T) {
	a := setup(t)
	a.run(t, httpTests{
		{name: "Welcome", path: "/", wantData: []byte(`{"mensaje": "Bienvenido a la API de Mundo Acuático"}`)},
		{name: "Unknown route", path: "/piscinas", wantCode: http.StatusNotFound, wantData: marshalObj(t, errResourceAbsent)},
	})
}

func Test_staffApi_login(t *testing.T) {
	a := setup(t)
	usr := testutil.CreateStaff(t, a.repos.Staff, "maria", "Nadar2024", staff.RoleAdmin, true)
	testutil.CreateStaff(t, a.repos.Staff, "pedro", "Nadar2024", staff.RoleEditor, false)

	failed := marshalObj(t, httpErr{Error: "Usuario o contraseña incorrectos"})
	missing := marshalObj(t, httpErr{Error: "Usuario y contraseña son obligatorios"})

	a.run(t, httpTests{
		{name: "Malformed body", body: []byte(`{"usuario": `), wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "El cuerpo de la solicitud no es un JSON válido"})},
		{name: "Missing password", body: []byte(`{"usuario": "maria"}`), wantCode: http.StatusBadRequest, wantData: missing},
		{name: "Blank username", body: []byte(`{"usuario": "  ", "password": "Nadar2024"}`), wantCode: http.StatusBadRequest, wantData: missing},
		{name: "Unknown user", body: []byte(`{"usuario": "juan", "password": "Nadar2024"}`), wantCode: http.StatusUnauthorized, wantData: failed},
		{name: "Wrong password", body: []byte(`{"usuario": "maria", "password": "Nadar2025"}`), wantCode: http.StatusUnauthorized, wantData: failed},
		{name: "Inactive user", body: []byte(`{"usuario": "pedro", "password": "Nadar2024"}`), wantCode: http.StatusUnauthorized, wantData: failed},
	}.withPath("/usuarios/login", http.MethodPost))

	t.Run("Logged in", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/usuarios/login", []byte(`{"usuario": " MARIA ", "password": "Nadar2024"}`))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			ID       int64      `json:"id"`
			Username string     `json:"usuario"`
			Name     string     `json:"nombre"`
			Role     staff.Role `json:"rol"`
			Token    string     `json:"token"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, usr.ID, resp.ID)
		assert.Equal(t, "maria", resp.Username)
		assert.Equal(t, usr.Name, resp.Name)
		assert.Equal(t, staff.RoleAdmin, resp.Role)
		assert.NotEmpty(t, resp.Token)

		// the token opens admin endpoints
		req, rec = newAuthRequest(http.MethodGet, "/usuarios", resp.Token)
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		// the access was recorded
		got, err := a.repos.Staff.GetUser(req.Context(), usr.ID)
		require.NoError(t, err)
		assert.True(t, got.LastLogin.Valid)
	})
}

func Test_staffApi_refreshToken(t *testing.T) {
	a := setup(t)
	editor := testutil.CreateStaff(t, a.repos.Staff, "editor", "", staff.RoleEditor, true)
	inactive := testutil.CreateStaff(t, a.repos.Staff, "inactivo", "", staff.RoleAdmin, false)

	oldSession := core.NowFunc().Add(-2 * a.conf.Server.JWTRefreshExpirationDelta).Unix()
	unrefreshable, err := echoapi.GenerateToken(a.conf, echoapi.NewClaims(a.conf, editor, oldSession))
	require.NoError(t, err)

	ghost := editor
	ghost.ID = 999
	otherConf := testutil.Conf()
	otherConf.SecretKey = "another-secret"
	forged, err := echoapi.GenerateToken(otherConf, echoapi.NewClaims(otherConf, editor))
	require.NoError(t, err)

	a.run(t, httpTests{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "Forged token", token: forged, wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errInvalidToken)},
		{name: "Unknown user", token: a.getToken(t, ghost), wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errInvalidToken)},
		{name: "Inactive user not allowed", token: a.getToken(t, inactive), wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "Cuenta desactivada"})},
		{name: "Refresh period expired", token: unrefreshable, wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "La sesión ha expirado, inicie sesión nuevamente"})},
	}.withPath("/usuarios/token-refresh", http.MethodPost))

	t.Run("Token refreshed", func(t *testing.T) {
		origIat := core.NowFunc().Add(-time.Hour).Unix()
		token, err := echoapi.GenerateToken(a.conf, echoapi.NewClaims(a.conf, editor, origIat))
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/usuarios/token-refresh", token)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Token string `json:"token"`
		}
		decode(t, rec, &resp)
		require.NotEmpty(t, resp.Token)
		assert.NotEqual(t, token, resp.Token)

		// the refreshed token keeps the session start, so it can be refreshed in turn
		req, rec = newAuthRequest(http.MethodPost, "/usuarios/token-refresh", resp.Token)
		a.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_roles(t *testing.T) {
	a := setup(t)
	_, adminToken := a.adminToken(t)
	editor := testutil.CreateStaff(t, a.repos.Staff, "editor", "", staff.RoleEditor, true)
	editorToken := a.getToken(t, editor)

	a.run(t, httpTests{
		{name: "Editor cannot list staff", path: "/usuarios", token: editorToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "Editor cannot list subscribers", path: "/suscriptores", token: editorToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "Editor cannot create activities", method: http.MethodPost, path: "/actividades/agregar", body: []byte(`{}`), token: editorToken, wantCode: http.StatusForbidden},
		{name: "Editor manages news", path: "/noticias/todas", token: editorToken, wantData: marshalList(t)},
		{name: "Admin manages news", path: "/noticias/todas", token: adminToken, wantData: marshalList(t)},
		{name: "Subscribers need auth", path: "/suscriptores", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "Subscriptions need auth", path: "/suscripciones", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
	})
}

func Test_publicReadsIgnoreBadTokens(t *testing.T) {
	a := setup(t)
	editor := testutil.CreateStaff(t, a.repos.Staff, "editor", "", staff.RoleEditor, true)
	now := time.Now()
	swim := testutil.CreateActivity(t, a.repos.Activities, "Natación", 8000, activity.StatusActive, now.Add(-2*time.Hour))
	polo := testutil.CreateActivity(t, a.repos.Activities, "Waterpolo", 9000, activity.StatusInactive, now.Add(-1*time.Hour))

	expiredClaims := echoapi.NewClaims(a.conf, editor)
	expiredClaims.ExpiresAt = core.NowFunc().Add(-time.Minute).Unix()
	expired, err := echoapi.GenerateToken(a.conf, expiredClaims)
	require.NoError(t, err)

	otherConf := testutil.Conf()
	otherConf.SecretKey = "another-secret"
	forged, err := echoapi.GenerateToken(otherConf, echoapi.NewClaims(otherConf, editor))
	require.NoError(t, err)

	public := marshalList(t, swim)
	a.run(t, httpTests{
		{name: "Not a JWT", token: "not-a-jwt", wantData: public},
		{name: "Expired token", token: expired, wantData: public},
		{name: "Forged token", token: forged, wantData: public},
		{name: "Valid token", token: a.getToken(t, editor), wantData: marshalList(t, polo, swim)},
	}.withPath("/actividades", http.MethodGet))

	// protected routes still reject them
	req, rec := newAuthRequest(http.MethodGet, "/noticias/todas", expired)
	a.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, string(marshalObj(t, errInvalidToken)), rec.Body.String())
}
