package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/mundoacuatico/backend/apps/api/echo"
	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/news"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
	"github.com/mundoacuatico/backend/services/logger"
	"github.com/mundoacuatico/backend/tests"
)

var (
	ctxb = context.Background()

	errMissingToken   = httpErr{Error: "Autenticación requerida"}
	errInvalidToken   = httpErr{Error: "Sesión inválida o expirada"}
	errForbidden      = httpErr{Error: "No tiene permisos para realizar esta acción"}
	errResourceAbsent = httpErr{Error: "Recurso no encontrado"}
)

type app struct {
	*Server
	conf  *core.Config
	repos testutil.Repos
}

func setup(t *testing.T) app {
	t.Helper()

	conf := testutil.Conf()
	repos := testutil.NewRepos()
	validator := core.NewValidator()

	srv := NewServer(Deps{
		Conf:            conf,
		Logger:          logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf),
		ActivitySvc:     activity.NewService(repos.Activities, validator),
		InstructorSvc:   instructor.NewService(repos.Instructors, validator),
		ScheduleSvc:     schedule.NewService(repos.Schedules, repos.Tx, validator),
		SubscriberSvc:   subscriber.NewService(repos.Subscribers, validator),
		SubscriptionSvc: subscription.NewService(repos.Subscriptions, repos.Tx, validator),
		NewsSvc:         news.NewService(repos.News, validator),
		StaffSvc:        staff.NewService(repos.Staff, validator),
	})
	t.Cleanup(func() { _ = srv.Close() })

	return app{Server: srv, conf: conf, repos: repos}
}

type httpErr struct {
	Error string `json:"error"`
}

type validationErr struct {
	Error   string   `json:"error"`
	Details []string `json:"detalles"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (a app) getToken(t *testing.T, usr staff.User) string {
	token, err := GenerateToken(a.conf, NewClaims(a.conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// adminToken creates an active admin and returns a token for them.
func (a app) adminToken(t *testing.T) (staff.User, string) {
	usr := testutil.CreateStaff(t, a.repos.Staff, "admin", "", staff.RoleAdmin, true)
	return usr, a.getToken(t, usr)
}

type httpTests []httpTest

// withPath sets path and method on every test left without them.
func (tests httpTests) withPath(path, method string) httpTests {
	for i := range tests {
		if tests[i].path == "" {
			tests[i].path = path
		}
		if tests[i].method == "" {
			tests[i].method = method
		}
	}
	return tests
}

func (tests httpTests) withToken(token string) httpTests {
	for i := range tests {
		if tests[i].token == "" {
			tests[i].token = token
		}
	}
	return tests
}

func (tests httpTests) withCode(code int) httpTests {
	for i := range tests {
		if tests[i].wantCode == 0 {
			tests[i].wantCode = code
		}
	}
	return tests
}

// run serves every test against a, defaulting to a GET expecting 200.
func (a app) run(t *testing.T, tests httpTests) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func marshalList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshalList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

// checkCodeAndData checks the response code, and the body when the test expects one.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// decode unmarshals the response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode() failed: %v; body %s", err, rec.Body.String())
	}
}
