package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"cafe/internal/adapters/out/postgres"
	"cafe/internal/core/application/preparation"
	"cafe/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment keys.
const (
	KeyTCPAddr             = "CAFE_TCP_ADDR"
	KeyHTTPAddr            = "CAFE_HTTP_ADDR"
	KeyTeaDuration         = "CAFE_TEA_DURATION"
	KeyCoffeeDuration      = "CAFE_COFFEE_DURATION"
	KeyShutdownGrace       = "CAFE_SHUTDOWN_GRACE"
	KeyStateReportSchedule = "CAFE_STATE_REPORT_SCHEDULE"
	KeyLogLevel            = "CAFE_LOG_LEVEL"
	KeyLogFormat           = "CAFE_LOG_FORMAT"
	KeyDBHost              = "DB_HOST"
	KeyDBPort              = "DB_PORT"
	KeyDBUser              = "DB_USER"
	KeyDBPassword          = "DB_PASSWORD"
	KeyDBName              = "DB_NAME"
	KeyDBSslMode           = "DB_SSLMODE"
)

const (
	DefaultTCPAddr       = ":8888"
	DefaultHTTPAddr      = ":8080"
	DefaultShutdownGrace = 2 * time.Second
)

type Config struct {
	TCPAddr             string
	HTTPAddr            string
	TeaDuration         time.Duration
	CoffeeDuration      time.Duration
	ShutdownGrace       time.Duration
	StateReportSchedule string
	LogLevel            string
	LogFormat           string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
}

// LoadDotEnv loads path into the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// NewViper returns a viper instance reading the environment with defaults set.
// An empty variable counts as set, so CAFE_HTTP_ADDR= disables the HTTP server.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyTCPAddr, DefaultTCPAddr)
	v.SetDefault(KeyHTTPAddr, DefaultHTTPAddr)
	v.SetDefault(KeyTeaDuration, preparation.DefaultTeaDuration)
	v.SetDefault(KeyCoffeeDuration, preparation.DefaultCoffeeDuration)
	v.SetDefault(KeyShutdownGrace, DefaultShutdownGrace)
	v.SetDefault(KeyStateReportSchedule, jobs.DefaultStateReportSchedule)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyDBPort, "5432")
	v.SetDefault(KeyDBSslMode, "disable")
	for _, key := range []string{KeyDBHost, KeyDBUser, KeyDBPassword, KeyDBName} {
		_ = v.BindEnv(key)
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v
}

// LoadConfig reads every key from v and validates the result.
func LoadConfig(v *viper.Viper) (Config, error) {
	config := Config{
		TCPAddr:             v.GetString(KeyTCPAddr),
		HTTPAddr:            v.GetString(KeyHTTPAddr),
		TeaDuration:         v.GetDuration(KeyTeaDuration),
		CoffeeDuration:      v.GetDuration(KeyCoffeeDuration),
		ShutdownGrace:       v.GetDuration(KeyShutdownGrace),
		StateReportSchedule: v.GetString(KeyStateReportSchedule),
		LogLevel:            v.GetString(KeyLogLevel),
		LogFormat:           v.GetString(KeyLogFormat),
		DBHost:              v.GetString(KeyDBHost),
		DBPort:              v.GetString(KeyDBPort),
		DBUser:              v.GetString(KeyDBUser),
		DBPassword:          v.GetString(KeyDBPassword),
		DBName:              v.GetString(KeyDBName),
		DBSslMode:           v.GetString(KeyDBSslMode),
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var tcpErr, graceErr, logErr error
	if strings.TrimSpace(c.TCPAddr) == "" {
		tcpErr = fmt.Errorf("%s is required", KeyTCPAddr)
	}
	if c.ShutdownGrace < 0 {
		graceErr = fmt.Errorf("%s must not be negative", KeyShutdownGrace)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		logErr = err
	}
	return errors.Join(tcpErr, c.Durations().Validate(), graceErr, logErr)
}

// Durations returns the configured preparation times.
func (c Config) Durations() preparation.Durations {
	return preparation.Durations{Tea: c.TeaDuration, Coffee: c.CoffeeDuration}
}

// UsesPostgres reports whether the ledger should be stored in Postgres.
func (c Config) UsesPostgres() bool {
	return c.DBHost != ""
}

func (c Config) ConnectionConfig() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// NewLogger builds the process logger from CAFE_LOG_LEVEL and CAFE_LOG_FORMAT.
func NewLogger(c Config, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%s: unknown format %q", KeyLogFormat, c.LogFormat)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return level, nil
}
