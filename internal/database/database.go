package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booktracker/internal/auth"
	"github.com/mrlokans/booktracker/internal/database/users"
	"github.com/mrlokans/booktracker/internal/entities"
)

const (
	defaultUsername = "default_user"
	defaultEmail    = "default@example.com"
)

// Options controls how the database is opened and seeded.
type Options struct {
	LogLevel            logger.LogLevel
	DefaultUserPassword string
	BcryptCost          int
}

// DefaultOptions returns options suitable for tests and local use.
func DefaultOptions() Options {
	return Options{
		LogLevel:            logger.Warn,
		DefaultUserPassword: "default_password",
		BcryptCost:          bcrypt.MinCost,
	}
}

type Database struct {
	DB *gorm.DB

	// DefaultUserCreated reports whether opening the database had to seed the default user.
	DefaultUserCreated bool
}

func NewDatabase(dbPath string, opts Options) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.ReadingStatus{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	created, err := database.EnsureDefaultUser(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to seed default user: %w", err)
	}
	database.DefaultUserCreated = created

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// dsn enables a busy timeout so the async audit writer and request
// transactions wait for each other instead of failing with SQLITE_BUSY.
func dsn(dbPath string) string {
	if dbPath == ":memory:" || strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_busy_timeout=5000"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// EnsureDefaultUser creates the default user (id=1) with placeholder
// credentials if it does not exist yet. Returns true when a row was created.
func (d *Database) EnsureDefaultUser(ctx context.Context, opts Options) (bool, error) {
	repo := users.NewRepository(d.DB)

	_, err := repo.GetUserByID(ctx, entities.DefaultUserID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(opts.DefaultUserPassword, opts.BcryptCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash default password: %w", err)
	}

	user := &entities.User{
		ID:           entities.DefaultUserID,
		Username:     defaultUsername,
		Email:        defaultEmail,
		PasswordHash: hash,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return false, err
	}

	log.Printf("Created default user (id=%d)", entities.DefaultUserID)
	return true, nil
}
