package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/news"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
)

type (
	// Deps are the server dependencies, filled by the DI container (or by hand in tests).
	Deps struct {
		dig.In

		Conf            *core.Config
		Logger          core.Logger
		ActivitySvc     *activity.Service
		InstructorSvc   *instructor.Service
		ScheduleSvc     *schedule.Service
		SubscriberSvc   *subscriber.Service
		SubscriptionSvc *subscription.Service
		NewsSvc         *news.Service
		StaffSvc        *staff.Service
	}

	Server struct {
		deps     Deps
		app      *echo.Echo
		jwt      middleware.JWTConfig
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps Deps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		jwt:      newJWTConfig(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())
	s.app.Use(newPoolGuard(conf.Server.MaxInFlight, conf.Server.MaxQueue))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.SignalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", home)

	jwt := middleware.JWTWithConfig(s.jwt)
	optJWT := middleware.JWTWithConfig(s.optionalJWTConfig())

	staffOnly := []echo.MiddlewareFunc{jwt, s.staffMiddleware}
	admin := append(staffOnly, roleMiddleware(staff.User.IsAdmin))
	editor := append(staffOnly, roleMiddleware(staff.User.CanManageNews))
	public := []echo.MiddlewareFunc{optJWT, s.optionalStaffMiddleware}

	registerStaffAPI(s.app.Group("/usuarios"), s, staffOnly, admin)
	registerActivityAPI(s.app.Group("/actividades"), s.deps.ActivitySvc, public, admin)
	registerInstructorAPI(s.app.Group("/profesores"), s.deps.InstructorSvc, public, admin)
	registerScheduleAPI(s.app.Group("/horarios"), s.deps.ScheduleSvc, public, admin)
	registerSubscriberAPI(s.app.Group("/suscriptores", admin...), s.deps.SubscriberSvc)
	registerSubscriptionAPI(s.app.Group("/suscripciones", admin...), s.deps.SubscriptionSvc)
	registerNewsAPI(s.app.Group("/noticias"), s.deps.NewsSvc, public, editor)
}

// Start listens until the server is shut down. Listening errors are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the main goroutine to shut the server down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"mensaje": "Bienvenido a la API de Mundo Acuático"})
}
