package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/platekeeper/internal/config"
	"github.com/zjrosen/platekeeper/internal/infrastructure/sqlite"
	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/paths"
	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/presentation"
	"github.com/zjrosen/platekeeper/internal/tracing"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race with the dashboard's input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	// annotationNoStore marks commands that run without opening the database.
	annotationNoStore = "platekeeper/no-store"
	// annotationTUI marks commands that own the terminal.
	annotationTUI = "platekeeper/tui"
)

var (
	version = "dev"

	cfgFile     string
	dbFlag      string
	debugFlag   bool
	assumeYes   bool
	jsonOutput  bool
	timeoutFlag time.Duration

	cfg        config.Config
	configPath string
	reg        *registry
	logCleanup func()
)

// registry holds everything opened for one command invocation.
type registry struct {
	db      *sqlite.DB
	svc     *application.RegistryService
	lists   *application.ListCache
	tracing *tracing.Provider
}

var rootCmd = &cobra.Command{
	Use:   "platekeeper",
	Short: "Authorized and blacklisted vehicle plates for a gate",
	Long: `platekeeper keeps the registry of vehicle plates allowed through a gate
and the blacklist of plates that must be refused.

Running it without a subcommand opens the live dashboard.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runDashboard,
	Annotations:       map[string]string{annotationTUI: "true"},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .platekeeper/config.yaml, then ~/.config/platekeeper/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "",
		"registry database file or directory (overrides db_path)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also PLATEKEEPER_DEBUG=1)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"confirm every prompt without asking")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"print results as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0,
		"upper bound for one command (overrides timeout)")
}

// setup loads configuration, starts logging and opens the registry.
func setup(cmd *cobra.Command, _ []string) error {
	_, isInit := cmd.Annotations[annotationNoStore]
	if err := initConfig(!isInit); err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	_, isTUI := cmd.Annotations[annotationTUI]
	if err := initLogging(isTUI); err != nil {
		return err
	}

	if isInit {
		return nil
	}
	return openRegistry()
}

// initConfig reads the config file into cfg.
//
// Lookup order:
//  1. --config
//  2. .platekeeper/config.yaml (current directory)
//  3. ~/.config/platekeeper/config.yaml (user config)
//
// When none exists and writeDefault is set, the commented default config is
// written to --config or .platekeeper/config.yaml.
func initConfig(writeDefault bool) error {
	v := viper.New()
	setDefaults(v, config.Defaults())

	v.SetEnvPrefix("PLATEKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	localPath := filepath.Join(paths.DataDir, "config.yaml")
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case fileExists(localPath):
		v.SetConfigFile(localPath)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "platekeeper"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	defaultPath := localPath
	if cfgFile != "" {
		defaultPath = cfgFile
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config: %w", err)
		}
		if writeDefault {
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				v.SetConfigFile(defaultPath)
				_ = v.ReadInConfig()
			}
			// A failed write leaves the defaults in place
		}
	}

	configPath = v.ConfigFileUsed()
	if configPath == "" {
		configPath = defaultPath
	}

	cfg = config.Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	log.Debug(log.CatConfig, "config loaded", "path", configPath)
	return nil
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("auto_refresh", d.AutoRefresh)
	v.SetDefault("auto_refresh_debounce", d.AutoRefreshDebounce)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("cache.list_ttl", d.Cache.ListTTL)
	v.SetDefault("dashboard.notification_ttl", d.Dashboard.NotificationTTL)
	v.SetDefault("dashboard.show_blacklist", d.Dashboard.ShowBlacklist)
	v.SetDefault("dashboard.recent_entries", d.Dashboard.RecentEntries)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func initLogging(tui bool) error {
	if !debugFlag && os.Getenv("PLATEKEEPER_DEBUG") == "" {
		return nil
	}

	logPath := os.Getenv("PLATEKEEPER_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	var (
		cleanup func()
		err     error
	)
	if tui {
		cleanup, err = log.InitWithTeaLog(logPath, "platekeeper")
	} else {
		cleanup, err = log.Init(logPath)
	}
	if err != nil {
		return fmt.Errorf("starting debug log: %w", err)
	}
	logCleanup = cleanup
	log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
	log.Info(log.CatConfig, "debug logging enabled", "path", logPath, "version", version)
	return nil
}

func openRegistry() error {
	source := cfg.DBPath
	if dbFlag != "" {
		source = dbFlag
	}
	dbPath := paths.ResolveDBPath(source)

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening registry %s: %w", dbPath, err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("starting tracing: %w", err)
	}

	svc := application.NewRegistryService(
		db.AuthorizedRepository(),
		db.BlacklistRepository(),
		db.EntryRepository(),
		application.WithTracer(provider.Tracer()),
	)
	reg = &registry{
		db:      db,
		svc:     svc,
		lists:   application.NewListCache(svc, cfg.Cache.ListTTL),
		tracing: provider,
	}
	return nil
}

// closeRegistry flushes traces and closes the database and debug log.
func closeRegistry() {
	if reg != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := reg.tracing.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
		cancel()
		if err := reg.db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing registry failed", err)
		}
		reg = nil
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
		log.Reset()
	}
}

// commandContext bounds a single command by the configured timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cfg.Timeout)
}

func newFormatter(cmd *cobra.Command) *presentation.Formatter {
	return presentation.NewFormatter(cmd.OutOrStdout(), jsonOutput)
}

// outcomeError makes the process exit non-zero after a workflow ended in an
// outcome other than success or cancellation. Its message is already printed.
type outcomeError struct {
	outcome string
}

func (e *outcomeError) Error() string {
	return "workflow ended with outcome " + e.outcome
}

// report prints a workflow result and turns failure outcomes into an error.
func report(cmd *cobra.Command, dto presentation.ResultDTO) error {
	if err := newFormatter(cmd).FormatResult(dto); err != nil {
		return err
	}
	switch dto.Outcome {
	case string(application.OutcomeSuccess), string(application.OutcomeCancelled):
		return nil
	}
	return &outcomeError{outcome: dto.Outcome}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Execute runs the root command with ctx and releases everything it opened.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	closeRegistry()

	var outcome *outcomeError
	if err != nil && !errors.As(err, &outcome) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
