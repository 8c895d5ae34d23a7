// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr"`

	// DBHost, DBPort, DBUser, DBPassword and DBName describe the PostgreSQL
	// connection when DatabaseDSN is empty.
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`

	// DatabaseDSN, when set, is used verbatim instead of the DB* fields.
	DatabaseDSN string `json:"database_dsn"`

	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int `json:"max_open_conns"`

	// StaticDir is the directory holding the prebuilt frontend.
	StaticDir string `json:"static_dir"`

	// LogLevel is a zap level name.
	LogLevel string `json:"log_level"`

	// CleanupInterval is the period of the orphan radcheck cleaner; 0 disables it.
	CleanupInterval time.Duration `json:"-"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// fileOptions mirrors Options for the JSON file, where durations are strings like "1h".
type fileOptions struct {
	*Options
	CleanupInterval string `json:"cleanup_interval"`
}

// options holds the current configuration values.
var options = &Options{}

func init() {
	register(flag.CommandLine, options)
}

// register binds the command-line flags and their defaults to o.
func register(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.Addr, "a", ":5000", "run on ip:port server")
	fs.StringVar(&o.DBHost, "host", "", "database host")
	fs.StringVar(&o.DBPort, "port", "", "database port")
	fs.StringVar(&o.DBUser, "user", "", "database user")
	fs.StringVar(&o.DBPassword, "passwd", "", "database password")
	fs.StringVar(&o.DBName, "database", "", "database name")
	fs.StringVar(&o.DatabaseDSN, "d", "", "db address (overrides the individual db flags)")
	fs.IntVar(&o.MaxOpenConns, "max-conns", 10, "maximum open database connections")
	fs.StringVar(&o.StaticDir, "s", "client/dist", "directory of the prebuilt frontend")
	fs.StringVar(&o.LogLevel, "l", "info", "log level")
	fs.DurationVar(&o.CleanupInterval, "cleanup", 0, "orphan radcheck cleanup interval (0 disables)")
	fs.StringVar(&o.Config, "config", "config.json", "path to config file")
	fs.StringVar(&o.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file and environment variables
// to set configuration values, in that order of increasing precedence.
// It exits the process if the config file exists but cannot be used.
func Parse() *Options {
	flag.Parse()

	if err := load(options, os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return options
}

// load overlays the config file and then the environment onto o.
func load(o *Options, getenv func(string) string) error {
	if configPath := getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}

	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("error while reading config file: %w", err)
			}
			fo := fileOptions{Options: o}
			if err := json.Unmarshal(data, &fo); err != nil {
				return fmt.Errorf("error while parsing config file: %w", err)
			}
			if fo.CleanupInterval != "" {
				d, err := time.ParseDuration(fo.CleanupInterval)
				if err != nil {
					return fmt.Errorf("error while parsing cleanup_interval: %w", err)
				}
				o.CleanupInterval = d
			}
		}
	}

	// Variable names match the deployment the service was first run under.
	envStrings := map[string]*string{
		"SERVER_ADDRESS": &o.Addr,
		"HOST":           &o.DBHost,
		"PORT":           &o.DBPort,
		"USER":           &o.DBUser,
		"PASSWD":         &o.DBPassword,
		"DATABASE":       &o.DBName,
		"DATABASE_DSN":   &o.DatabaseDSN,
		"STATIC_DIR":     &o.StaticDir,
		"LOG_LEVEL":      &o.LogLevel,
	}
	for key, dst := range envStrings {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	if v := getenv("CLEANUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CLEANUP_INTERVAL: %w", err)
		}
		o.CleanupInterval = d
	}

	return nil
}

// DSN returns the lib/pq connection string. Empty fields are left out so
// the driver falls back to its own defaults.
func (o *Options) DSN() string {
	if o.DatabaseDSN != "" {
		return o.DatabaseDSN
	}

	parts := make([]string, 0, 6)
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, key+"="+quote(value))
	}
	add("host", o.DBHost)
	add("port", o.DBPort)
	add("user", o.DBUser)
	add("password", o.DBPassword)
	add("dbname", o.DBName)
	parts = append(parts, "sslmode=disable")

	return strings.Join(parts, " ")
}

// quote escapes a value for the key=value DSN format.
func quote(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
