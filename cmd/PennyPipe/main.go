// PennyPipe is a Telegram finance-tracking bot persisting to a Google Sheets
// spreadsheet. It walks users through transaction entry with inline button
// flows and posts recurring entries on a daily schedule.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/BTreeMap/PennyPipe/internal/bot"
	"github.com/BTreeMap/PennyPipe/internal/flow"
	"github.com/BTreeMap/PennyPipe/internal/ledger"
	"github.com/BTreeMap/PennyPipe/internal/recurring"
	"github.com/BTreeMap/PennyPipe/internal/scheduler"
	"github.com/BTreeMap/PennyPipe/internal/store"
	"github.com/BTreeMap/PennyPipe/internal/telegram"
	"github.com/BTreeMap/PennyPipe/internal/util"
)

// Default configuration constants.
const (
	// DefaultStateDir is the default directory for PennyPipe state data.
	DefaultStateDir = "/var/lib/pennypipe"
	// DefaultPostingLogFile is the default SQLite posting log filename.
	DefaultPostingLogFile = "pennypipe.db"
	// DefaultRecurringCron posts recurring entries daily at 08:00.
	DefaultRecurringCron = "0 8 * * *"
)

// Config holds environment configuration.
type Config struct {
	TelegramToken    string
	SheetID          string
	CredentialsFile  string
	CredentialsB64   string
	StateDir         string
	PostingLogDriver string
	PostingLogDSN    string
	RecurringCron    string
	Debug            bool
}

func main() {
	config := loadEnvironmentConfig()
	initializeLogger(config.Debug)
	flags := parseCommandLineFlags(config)

	if *flags.telegramToken == "" || *flags.sheetID == "" {
		slog.Error("TELEGRAM_TOKEN and SHEET_ID are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	credentials, err := loadCredentials(config)
	if err != nil {
		slog.Error("Failed to load Google credentials", "error", err)
		os.Exit(1)
	}
	led, err := ledger.NewSheetsLedger(ctx, *flags.sheetID, credentials)
	if err != nil {
		slog.Error("Failed to build sheets ledger", "error", err)
		os.Exit(1)
	}

	postingLog, err := openPostingLog(config, *flags.stateDir)
	if err != nil {
		slog.Error("Failed to open posting log", "error", err)
		os.Exit(1)
	}
	defer postingLog.Close()

	transport, err := telegram.NewTransport(*flags.telegramToken)
	if err != nil {
		slog.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}

	engine := flow.NewEngine(flow.NewConversationStore(), led, transport)
	b := bot.New(engine, led, transport)

	poster := recurring.NewPoster(led, postingLog)
	sched := scheduler.New()
	if err := sched.AddJob(*flags.recurringCron, func() {
		if err := poster.PostDue(context.Background()); err != nil {
			slog.Error("Recurring posting run failed", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to schedule recurring postings", "error", err, "cron", *flags.recurringCron)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	slog.Info("Bootstrapping PennyPipe", "cron", *flags.recurringCron, "posting_log", config.PostingLogDriver)
	if err := b.Run(ctx); err != nil {
		slog.Error("PennyPipe failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("PennyPipe exited successfully")
}

// Flags holds command line flag values.
type Flags struct {
	telegramToken *string
	sheetID       *string
	stateDir      *string
	recurringCron *string
}

// initializeLogger sets up structured logging.
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and a
// .env file when present.
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}
	return Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		SheetID:          os.Getenv("SHEET_ID"),
		CredentialsFile:  os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		CredentialsB64:   os.Getenv("GOOGLE_CREDENTIALS_BASE64"),
		StateDir:         util.EnvOrDefault("PENNYPIPE_STATE_DIR", DefaultStateDir),
		PostingLogDriver: util.EnvOrDefault("POSTING_LOG_DRIVER", "sqlite3"),
		PostingLogDSN:    os.Getenv("POSTING_LOG_DSN"),
		RecurringCron:    util.EnvOrDefault("RECURRING_CRON", DefaultRecurringCron),
		Debug:            util.ParseBoolEnv("DEBUG", false),
	}
}

// parseCommandLineFlags defines flag overrides seeded from the environment.
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		telegramToken: flag.String("telegram-token", config.TelegramToken, "Telegram bot token"),
		sheetID:       flag.String("sheet-id", config.SheetID, "Google Sheets spreadsheet id"),
		stateDir:      flag.String("state-dir", config.StateDir, "directory for local state"),
		recurringCron: flag.String("recurring-cron", config.RecurringCron, "cron expression for recurring postings"),
	}
	flag.Parse()
	return flags
}

// loadCredentials reads the service account key from a file, falling back to
// the base64-encoded environment variable used in container deployments.
func loadCredentials(config Config) ([]byte, error) {
	if config.CredentialsFile != "" {
		return os.ReadFile(config.CredentialsFile)
	}
	if config.CredentialsB64 != "" {
		return base64.StdEncoding.DecodeString(config.CredentialsB64)
	}
	return os.ReadFile("credentials.json")
}

// openPostingLog selects the posting log backend by driver name.
func openPostingLog(config Config, stateDir string) (store.PostingLog, error) {
	switch config.PostingLogDriver {
	case "postgres":
		return store.NewPostgresPostingLog(config.PostingLogDSN)
	case "memory":
		slog.Warn("Using in-memory posting log; a same-day restart may repost recurring entries")
		return store.NewInMemoryPostingLog(), nil
	default:
		if err := os.MkdirAll(stateDir, 0o755); err != nil {
			return nil, err
		}
		path := config.PostingLogDSN
		if path == "" {
			path = filepath.Join(stateDir, DefaultPostingLogFile)
		}
		return store.NewSQLitePostingLog(path)
	}
}
