package dig_container

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/mundoacuatico/backend/apps/api/echo"
	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/activity"
	"github.com/mundoacuatico/backend/core/instructor"
	"github.com/mundoacuatico/backend/core/news"
	"github.com/mundoacuatico/backend/core/schedule"
	"github.com/mundoacuatico/backend/core/staff"
	"github.com/mundoacuatico/backend/core/subscriber"
	"github.com/mundoacuatico/backend/core/subscription"
	logsvc "github.com/mundoacuatico/backend/services/logger"
	"github.com/mundoacuatico/backend/storage/database"
	inmemdb "github.com/mundoacuatico/backend/storage/database/inmem"
	sqlxrepos "github.com/mundoacuatico/backend/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Closer releases the storage resources on shutdown.
type Closer func() error

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) (*sqlx.DB, core.DBExecutor, Closer) {
	setUp := func() (*sqlx.DB, error) {
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db, db, db.Close
}

func newTransactor(db *sqlx.DB) core.Transactor {
	return database.NewTransactor(db)
}

func provideSQLRepositories(c *dig.Container) {
	must(c.Provide(newDB))
	must(c.Provide(newTransactor))
	must(c.Provide(sqlxrepos.NewActivityRepository, dig.As(new(activity.Repository))))
	must(c.Provide(sqlxrepos.NewInstructorRepository, dig.As(new(instructor.Repository))))
	must(c.Provide(sqlxrepos.NewScheduleRepository, dig.As(new(schedule.Repository))))
	must(c.Provide(sqlxrepos.NewSubscriberRepository, dig.As(new(subscriber.Repository))))
	must(c.Provide(sqlxrepos.NewSubscriptionRepository, dig.As(new(subscription.Repository))))
	must(c.Provide(sqlxrepos.NewNewsRepository, dig.As(new(news.Repository))))
	must(c.Provide(sqlxrepos.NewStaffRepository, dig.As(new(staff.Repository))))
}

func provideInMemRepositories(c *dig.Container) {
	must(c.Provide(func() (*inmemdb.DB, Closer) {
		return inmemdb.Open(), func() error { return nil }
	}))
	must(c.Provide(func(db *inmemdb.DB) core.Transactor { return inmemdb.NewTransactor(db) }))
	must(c.Provide(inmemdb.NewActivityRepository, dig.As(new(activity.Repository))))
	must(c.Provide(inmemdb.NewInstructorRepository, dig.As(new(instructor.Repository))))
	must(c.Provide(inmemdb.NewScheduleRepository, dig.As(new(schedule.Repository))))
	must(c.Provide(inmemdb.NewSubscriberRepository, dig.As(new(subscriber.Repository))))
	must(c.Provide(inmemdb.NewSubscriptionRepository, dig.As(new(subscription.Repository))))
	must(c.Provide(inmemdb.NewNewsRepository, dig.As(new(news.Repository))))
	must(c.Provide(inmemdb.NewStaffRepository, dig.As(new(staff.Repository))))
}

// New returns a new dependency injection dig.Container
func New(conf *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(func() *core.Config { return conf }))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	if conf.Database.InMemory {
		provideInMemRepositories(c)
	} else {
		provideSQLRepositories(c)
	}
	must(c.Provide(core.NewValidator))
	must(c.Provide(activity.NewService))
	must(c.Provide(instructor.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(subscriber.NewService))
	must(c.Provide(subscription.NewService))
	must(c.Provide(news.NewService))
	must(c.Provide(staff.NewService))
	must(c.Provide(echoapi.NewServer))

	if conf.Debug {
		_ = dig.Visualize(c, os.Stdout)
	}

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
