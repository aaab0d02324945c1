package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/config"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/logging"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "mcu",
	Short: "Generic data-structure utilities",
	Long: `mcu drives the MyCommonUtilsLib utilities from the command line: disjoint-set
forest scripts, indexed priority-queue sorting, lazy set algebra, perceptual
image hashing, and a byte-bounded LRU cache over a local blob store.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .mcu.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("telemetry", "", "append JSONL telemetry events to this file")
	rootCmd.PersistentFlags().Uint64("seed", 0, "seed for random choices (default from config)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("telemetry_path", rootCmd.PersistentFlags().Lookup("telemetry"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
}

func initConfig() {
	// A .env file in the working directory feeds MCU_* variables; it is optional.
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".mcu")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("MCU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session bundles what every subcommand needs: the effective config, a
// logger, and the telemetry emitter (nil when telemetry is off).
type session struct {
	cfg config.Config
	log *slog.Logger
	tel *telemetry.Emitter
}

// newSession loads configuration and builds the logger and emitter.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	errOut := cmd.ErrOrStderr()
	s := &session{cfg: cfg, log: logging.New(errOut, level, cfg.LogColor && isTerminal(errOut))}
	if cfg.TelemetryPath != "" {
		s.tel, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// isTerminal reports whether w is a terminal, so output may be coloured.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Close flushes and closes the telemetry emitter.
func (s *session) Close() {
	if err := s.tel.Close(); err != nil {
		s.log.Warn("closing telemetry", "err", err)
	}
}

// setupSignalContext returns a context cancelled on SIGINT or SIGTERM.
func setupSignalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
