package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string

	SQLitePath string

	// DatabaseURL wins over the discrete Postgres fields when set.
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	SlowThreshold time.Duration
	Silent        bool
}

func (c Config) driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Driver))
	switch d {
	case "", "sqlite3":
		return DriverSQLite
	case "pg", "postgresql":
		return DriverPostgres
	}
	return d
}

// PostgresDSN builds a URL-style DSN from the discrete fields.
func (c Config) PostgresDSN() string {
	if dsn := strings.TrimSpace(c.DatabaseURL); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SQLiteDSN enables foreign keys and a busy timeout on every connection.
func (c Config) SQLiteDSN() string {
	path := strings.TrimSpace(c.SQLitePath)
	if path == "" {
		path = "database.sqlite"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_foreign_keys=1&_busy_timeout=5000"
}

// Store owns the gorm handle and its dialect.
type Store struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func Open(cfg Config, logg *logger.Logger) (*Store, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	storeLog := logg.With("service", "Store")

	gormCfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(cfg),
	}

	var (
		db  *gorm.DB
		err error
	)
	driver := cfg.driver()
	switch driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.SQLiteDSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		// SQLite allows one writer; a single connection turns lock errors into queueing.
		sqlDB.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	storeLog.Info("Store opened", "driver", driver)
	return &Store{db: db, driver: driver, log: storeLog}, nil
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Driver() string { return s.driver }

// PingContext checks the underlying pool.
func (s *Store) PingContext(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(cfg Config) gormLogger.Interface {
	if cfg.Silent {
		return gormLogger.Discard
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
