package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	baseURL    string
	host       string
	port       int

	appCfg  *appconfig.Config
	service *services.Service
)

var rootCmd = &cobra.Command{
	Use:           "octofit",
	Short:         "OctoFit Tracker",
	Long:          `OctoFit Tracker is a client for the OctoFit fitness API: browse users, teams, activities, the leaderboard and workouts, and manage team membership.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Interrupts cancel whatever request is in flight
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stop()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "",
		"backend API root, e.g. http://localhost:8000/api/")
}

// commonSetUp loads the config, sets up logging and builds the backend
// client shared by every command.
func commonSetUp(cmd *cobra.Command) error {
	cfg, err := appconfig.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	level := cfg.LogLevel
	if cmd.Flags().Changed("log") || level == "" {
		level = logLevel
	}
	setLogging(level)

	appCfg = cfg
	service = services.NewService(cfg, nil)

	log.Debug().Str("base_url", cfg.APIBaseURL()).Msg("configuration loaded")
	return nil
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Commands log through zerolog.Ctx without attaching a logger first
	zerolog.DefaultContextLogger = &log.Logger

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
