package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Host            string
		Port            int
		User            string
		Password        string
		Name            string
		DisableTLS      bool
		InMemory        bool // use the in-memory store instead of Postgres
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}

	ServerConfig struct {
		Address                   string
		MaxInFlight               int
		MaxQueue                  int
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		DisableReqLogs            bool
	}

	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, PROD
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string
		Server       ServerConfig
		Database     DatabaseConfig
	}
)

// Address returns the database "host:port".
func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"debug":                            "DEBUG",
	"build":                            "BUILD",
	"secretKey":                        "SECRET_KEY",
	"rollbarToken":                     "ROLLBAR_TOKEN",
	"server.address":                   "SERVER_ADDRESS",
	"server.maxInFlight":               "SERVER_MAX_IN_FLIGHT",
	"server.maxQueue":                  "SERVER_MAX_QUEUE",
	"server.shutdownTimeout":           "SERVER_SHUTDOWN_TIMEOUT",
	"server.jwtExpirationDelta":        "JWT_EXPIRATION",
	"server.jwtRefreshExpirationDelta": "JWT_REFRESH_EXPIRATION",
	"server.disableReqLogs":            "SERVER_DISABLE_REQ_LOGS",
	"database.host":                    "DB_HOST",
	"database.port":                    "DB_PORT",
	"database.user":                    "DB_USER",
	"database.password":                "DB_PASSWORD",
	"database.name":                    "DB_NAME",
	"database.disableTLS":              "DB_DISABLE_TLS",
	"database.inMemory":                "DB_IN_MEMORY",
	"database.maxOpenConns":            "DB_MAX_OPEN_CONNS",
	"database.maxIdleConns":            "DB_MAX_IDLE_CONNS",
	"database.connMaxLifetime":         "DB_CONN_MAX_LIFETIME",
}

func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	loadDotEnv(env)

	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "k3x!w9-mundo-acuatico-dev-secret-8h2$q")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.maxInFlight", 10)
	v.SetDefault("server.maxQueue", 100)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 8*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "mundo_acuatico")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.inMemory", false)
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30*time.Minute)

	for key, envVar := range envBindings {
		_ = v.BindEnv(key, envVar)
	}

	return &Config{
		AppName:      "Mundo Acuático",
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     env == "TEST",
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:                   v.GetString("server.address"),
			MaxInFlight:               v.GetInt("server.maxInFlight"),
			MaxQueue:                  v.GetInt("server.maxQueue"),
			ShutdownTimeout:           v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
			DisableReqLogs:            v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			DisableTLS:      v.GetBool("database.disableTLS"),
			InMemory:        v.GetBool("database.inMemory"),
			MaxOpenConns:    v.GetInt("database.maxOpenConns"),
			MaxIdleConns:    v.GetInt("database.maxIdleConns"),
			ConnMaxLifetime: v.GetDuration("database.connMaxLifetime"),
		},
	}
}

// loadDotEnv loads config/.env.<env> and .env if they exist (ignored if they do not).
// Variables already present in the environment win.
func loadDotEnv(env string) {
	paths := []string{filepath.Join("config", ".env."+strings.ToLower(env)), ".env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Fatalf("config.godotenv(%s): %v", path, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", path, err)
		}
	}
}
