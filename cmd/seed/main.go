package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"scheduler/internal/config"
	"scheduler/internal/db"
	"scheduler/internal/logger"
	"scheduler/internal/model"
	"scheduler/internal/repository"
	"scheduler/internal/service"
)

//go:embed fixtures.json
var defaultFixtures []byte

var (
	reset        bool
	fixturesPath string

	rootCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load fixture users and events into the scheduler database",
		Long: `seed creates the schema if needed and inserts fixture users and events.
Records whose id already exists are left untouched, so the command can be
run repeatedly. Use --reset to drop the tables first.`,
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&reset, "reset", false, "drop the users and events tables before seeding")
	rootCmd.Flags().StringVar(&fixturesPath, "file", "", "fixtures JSON file (default: built-in fixtures)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Fixtures is the on-disk seed format.
type Fixtures struct {
	Users  []UserFixture  `json:"users"`
	Events []EventFixture `json:"events"`
}

// UserFixture is a user with a plaintext password, hashed on insert.
type UserFixture struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PlaintextPassword string `json:"plaintextPassword"`
}

// EventFixture is an event with dates in any accepted layout.
type EventFixture struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	StartDate  string `json:"startDate"`
	FinishDate string `json:"finishDate"`
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.ParseMode(cfg.Logging.Mode), cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fixtures, err := readFixtures()
	if err != nil {
		return err
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	log.Info(ctx, "connected to database")

	if reset {
		if err := db.Reset(gormDB); err != nil {
			return err
		}
		log.Info(ctx, "tables dropped")
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	users, events, err := seed(ctx, repository.NewUserRepository(gormDB), repository.NewEventRepository(gormDB), fixtures)
	if err != nil {
		return err
	}

	log.Info(ctx, "seed completed",
		zap.Int("users_created", users),
		zap.Int("events_created", events),
	)
	return nil
}

func readFixtures() (*Fixtures, error) {
	if fixturesPath == "" {
		return parseFixtures(defaultFixtures)
	}
	f, err := os.Open(fixturesPath)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return parseFixtures(raw)
}

func parseFixtures(raw []byte) (*Fixtures, error) {
	var fixtures Fixtures
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fixtures, nil
}

// seed inserts fixtures whose ids are not stored yet and reports how many
// users and events were created.
func seed(ctx context.Context, users repository.UserRepository, events repository.EventRepository, fixtures *Fixtures) (int, int, error) {
	validator := service.NewCredentialValidator()
	createdUsers, createdEvents := 0, 0

	for _, fx := range fixtures.Users {
		if !model.IsValidID(fx.ID) {
			return createdUsers, createdEvents, fmt.Errorf("user fixture %q: malformed id", fx.ID)
		}
		if err := validator.ValidateSignup(fx.Name, fx.Email, fx.PlaintextPassword); err != nil {
			return createdUsers, createdEvents, fmt.Errorf("user fixture %s: %w", fx.ID, err)
		}

		_, lookupErr := users.FindByID(ctx, fx.ID)
		exists, err := found(lookupErr)
		if err != nil {
			return createdUsers, createdEvents, fmt.Errorf("check user %s: %w", fx.ID, err)
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(fx.PlaintextPassword), bcrypt.DefaultCost)
		if err != nil {
			return createdUsers, createdEvents, fmt.Errorf("hash password for %s: %w", fx.ID, err)
		}
		user := &model.User{ID: fx.ID, Name: fx.Name, Email: fx.Email, PasswordHash: string(hash)}
		if err := users.Create(ctx, user); err != nil {
			return createdUsers, createdEvents, fmt.Errorf("create user %s: %w", fx.ID, err)
		}
		createdUsers++
	}

	for _, fx := range fixtures.Events {
		if !model.IsValidID(fx.ID) {
			return createdUsers, createdEvents, fmt.Errorf("event fixture %q: malformed id", fx.ID)
		}
		dates, err := service.ValidateDateRange(&fx.StartDate, &fx.FinishDate)
		if err != nil {
			return createdUsers, createdEvents, fmt.Errorf("event fixture %s: %w", fx.ID, err)
		}

		_, lookupErr := events.FindByID(ctx, fx.ID)
		exists, err := found(lookupErr)
		if err != nil {
			return createdUsers, createdEvents, fmt.Errorf("check event %s: %w", fx.ID, err)
		}
		if exists {
			continue
		}

		event := &model.Event{ID: fx.ID, UserID: fx.UserID, StartDate: dates.Start, FinishDate: dates.Finish}
		if err := events.Create(ctx, event); err != nil {
			return createdUsers, createdEvents, fmt.Errorf("create event %s: %w", fx.ID, err)
		}
		createdEvents++
	}

	return createdUsers, createdEvents, nil
}

// found turns a repository lookup error into an existence check.
func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}
