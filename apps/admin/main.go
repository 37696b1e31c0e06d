package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/staff"
	logsvc "github.com/mundoacuatico/backend/services/logger"
	"github.com/mundoacuatico/backend/storage/database"
	inmemdb "github.com/mundoacuatico/backend/storage/database/inmem"
	sqlxrepos "github.com/mundoacuatico/backend/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(false)

	validator := core.NewValidator()
	cli := commandLine{}

	if conf.Database.InMemory {
		cli.staffSvc = staff.NewService(inmemdb.NewStaffRepository(inmemdb.Open()), validator)
	} else {
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer db.Close()
		cli.db = db.DB
		cli.staffSvc = staff.NewService(sqlxrepos.NewStaffRepository(db), validator)
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}
