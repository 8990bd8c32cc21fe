package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/andy/salesdesk/internal/config"
	"github.com/andy/salesdesk/internal/crypto"
	"github.com/andy/salesdesk/internal/db"
	"github.com/andy/salesdesk/internal/logging"
	"github.com/andy/salesdesk/internal/notify"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/service"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Logger *zap.Logger

	// Repositories
	ClientRepo       repository.ClientRepository
	PreferencesRepo  repository.PreferencesRepository
	NotificationLogs repository.NotificationLogRepository

	// Services
	ClientService       service.ClientService
	PreferencesService  service.PreferencesService
	NotificationService service.NotificationService
}

// New loads the default config and builds the App from it
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig opens the database described by cfg, encrypted or plain,
// migrates it and wires repositories and services
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		logger.Sync()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database ready",
		zap.String("path", cfg.Database.Path), zap.Bool("encrypted", cfg.Database.Encrypted))

	return Wire(cfg, database, logger), nil
}

// Wire builds repositories and services on an already-migrated database
func Wire(cfg *config.Config, database *db.DB, logger *zap.Logger) *App {
	logger = logging.OrNop(logger)

	clientRepo := repository.NewClientRepo(database, cfg.Search.Limit)
	prefsRepo := repository.NewPreferencesRepo(database)
	logRepo := repository.NewNotificationLogRepo(database)

	return &App{
		Config:              cfg,
		DB:                  database,
		Logger:              logger,
		ClientRepo:          clientRepo,
		PreferencesRepo:     prefsRepo,
		NotificationLogs:    logRepo,
		ClientService:       service.NewClientService(clientRepo, cfg.User.ID, logger),
		PreferencesService:  service.NewPreferencesService(prefsRepo, cfg.User.ID, logger),
		NotificationService: service.NewNotificationService(notify.NewSMTPMailer(cfg.Notify), logRepo, logger),
	}
}

func openDatabase(cfg config.DatabaseConfig) (*db.DB, error) {
	if !cfg.Encrypted {
		database, err := db.OpenPlain(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, nil
	}

	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil && !errors.Is(err, crypto.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to read encryption key: %w", err)
	}
	if err != nil {
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(cfg.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// Close flushes the logger and closes the database
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// promptForPassword asks for a new database password on first run
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your client directory will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
