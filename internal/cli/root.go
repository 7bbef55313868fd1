package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizzer/internal/api"
	"quizzer/internal/attempt"
	"quizzer/internal/auth"
	"quizzer/internal/config"
	"quizzer/internal/domain"
	fileinfra "quizzer/internal/infra/file"
	"quizzer/internal/infra/memory"
	redisinfra "quizzer/internal/infra/redis"
	"quizzer/internal/logging"
)

var (
	apiBaseURL string
	configPath string
	verbose    bool
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envAPI := os.Getenv("QUIZZER_API")
	if envAPI == "" {
		envAPI = "http://localhost:8080"
	}
	envConfig := os.Getenv("QUIZZER_CONFIG")
	if envConfig == "" {
		envConfig = filepath.Join(configHome(), "config.yaml")
	}

	cmd := &cobra.Command{
		Use:          "quizzer",
		Short:        "Command-line client for the Quizzer quiz backend",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&apiBaseURL, "api", envAPI, "base URL of the Quizzer backend")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newQuizzesCmd())
	cmd.AddCommand(newQuestionsCmd())
	cmd.AddCommand(newTokensCmd())
	cmd.AddCommand(newTakeCmd())
	cmd.AddCommand(newResultsCmd())
	return cmd
}

// env holds the wired dependencies every subcommand needs.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	session *auth.Session
	client  *api.Client
	manager *attempt.Manager
}

// buildEnv loads config and wires the client stack. A missing config file is
// not an error; defaults apply.
func buildEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logging.New(os.Stderr, level)

	baseURL := cfg.API.BaseURL
	if apiBaseURL != "" {
		baseURL = apiBaseURL
	}

	credsFile := cfg.Auth.CredentialsFile
	if credsFile == "" {
		credsFile = filepath.Join(configHome(), "credentials.json")
	}
	session := auth.Load(credsFile)

	client := api.NewClient(baseURL, session, config.Duration(cfg.API.Timeout, 15*time.Second))

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	manager := attempt.NewManager(store, client, log, config.Duration(cfg.Attempt.FetchTimeout, 10*time.Second))

	return &env{
		cfg:     cfg,
		log:     log,
		session: session,
		client:  client,
		manager: manager,
	}, nil
}

func buildStore(cfg config.Config) (attempt.SessionStore, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return memory.NewSessionStore(), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisinfra.NewSessionStore(client, config.Duration(cfg.Redis.TTL, 24*time.Hour)), nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = filepath.Join(configHome(), "cache")
		}
		return fileinfra.NewSessionStore(dir)
	}
}

// requireLogin guards commands that only work with a stored session.
func requireLogin(e *env) error {
	if e.session.State() != auth.StateAuthenticated {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func configHome() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "quizzer")
	}
	return ".quizzer"
}
