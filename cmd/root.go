package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rail44/gemrun/internal/app"
	"github.com/rail44/gemrun/internal/config"
	"github.com/rail44/gemrun/internal/credential"
	"github.com/rail44/gemrun/internal/input"
	"github.com/rail44/gemrun/internal/log"
	"github.com/rail44/gemrun/internal/ui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gemrun",
	Short: "Run reusable prompts against the Gemini API",
	Long: `gemrun binds system instructions to named commands and sends text
through them to a generative model, printing the result.

Register a command once, then run it on any text:

  gemrun register summarize --instructions "Summarize the input in one paragraph."
  pbpaste | gemrun run summarize`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gemini/config.toml)")
	flags.String("default-model", "", "model used by commands registered without one")
	flags.String("store", "", "command store file (default is $HOME/.config/gemini/commands.json)")
	flags.String("provider", "", "generation backend: gemini or ollama")
	flags.String("host", "", "API base URL override")
	flags.String("log-level", "", "log level: error, warn, info, debug, trace")
	flags.Int("max-input-length", 0, "maximum input length in characters")
	flags.Bool("plain", false, "disable the progress spinner")

	for _, name := range []string{"default-model", "store", "provider", "host", "log-level", "max-input-length", "plain"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initEnv loads the credential file and enables GEMRUN_* environment overrides
func initEnv() {
	viper.SetEnvPrefix("gemrun")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	envPath, err := config.EnvPath()
	cobra.CheckErr(err)
	if err := credential.LoadEnvFile(envPath); err != nil {
		log.Warn("failed to load credentials", slog.String("error", err.Error()))
	}
}

// loadConfig reads the config file and applies flag and environment overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if viper.IsSet("default-model") {
		cfg.DefaultModel = viper.GetString("default-model")
	}
	if viper.IsSet("store") {
		cfg.StorePath = viper.GetString("store")
	}
	if viper.IsSet("provider") {
		cfg.Provider = viper.GetString("provider")
	}
	if viper.IsSet("host") {
		cfg.Host = viper.GetString("host")
	}
	if viper.IsSet("log-level") {
		cfg.LogLevel = viper.GetString("log-level")
	}
	if viper.IsSet("max-input-length") {
		cfg.MaxInputLength = viper.GetInt("max-input-length")
	}
	if viper.IsSet("plain") {
		cfg.Plain = viper.GetBool("plain")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := setupLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) error {
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = config.DefaultLogLevel
	}
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	return log.SetLevel(level)
}

// newApp builds the application for one command invocation
func newApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log.Debug("configuration loaded",
		slog.String("provider", cfg.Provider),
		slog.String("default_model", cfg.DefaultModel),
		slog.String("store", cfg.StorePath))

	return app.New(app.Options{
		Config:   cfg,
		Progress: ui.NewProgramWithOptions(ui.ProgramOptions{Plain: cfg.Plain}),
	})
}

// contentInput takes content from the remaining arguments, falling back to stdin
func contentInput(args []string) app.Input {
	return app.Input{
		Text:        strings.Join(args, " "),
		Reader:      os.Stdin,
		Interactive: input.StdinIsTerminal(),
	}
}

func exactArgsWithUsage(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("expected %s", usage)
		}
		return nil
	}
}
