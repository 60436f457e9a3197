package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/beaverchoice/fulfillment-backend/internal/platform/envutil"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open picks the storage backend from DB_DRIVER: "postgres" for a shared
// deployment, anything else gets the embedded sqlite file (the demo and
// simulation default, matching the seed data's origin).
func Open(logg *logger.Logger) (*Service, error) {
	driver := strings.ToLower(envutil.Str("DB_DRIVER", "sqlite"))
	if driver == "postgres" {
		return NewPostgres(logg)
	}
	return NewSQLite(logg)
}

func NewPostgres(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "PostgresService")

	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := envutil.Str("POSTGRES_PASSWORD", "")
	name := envutil.Str("POSTGRES_NAME", "beaverchoice")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &Service{db: gormDB, log: serviceLog}, nil
}

func NewSQLite(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "SQLiteService")

	path := envutil.Str("SQLITE_PATH", "beaverchoice.db")

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}

	return &Service{db: gormDB, log: serviceLog}, nil
}

func newGormLogger() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func (s *Service) DB() *gorm.DB { return s.db }
