package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/launchpad/internal/config"
	"github.com/zjrosen/launchpad/internal/launcher"
	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/runner"
	"github.com/zjrosen/launchpad/internal/terminal"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

func init() {
	// Query the terminal background before raw mode is entered so the
	// OSC 11 reply is not read back as key presses.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noColor   bool
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:     "launchpad",
	Short:   "A single-key command launcher for the terminal",
	Long:    `Shows a menu of single-key shortcuts. Pressing a key runs its shell command, optionally after asking for text that is substituted into the command.`,
	Version: version,
	RunE:    runLauncher,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/launchpad/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (path from LAUNCHPAD_LOG, default debug.log)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colors (also honors NO_COLOR)")
	rootCmd.PersistentFlags().String("shell", "",
		"shell used to run commands (default: /bin/sh)")

	// Bind flags to viper
	_ = viper.BindPFlag("shell", rootCmd.PersistentFlags().Lookup("shell"))
}

func initConfig() {
	cfg, configErr = loadConfig(viper.GetViper(), cfgFile)

	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// loadConfig reads the config file into a Config. An explicit path must
// exist; without one a missing config is replaced by the default template.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	defaults := config.Defaults()
	v.SetDefault("quit_key", defaults.QuitKey)
	v.SetDefault("prompt", defaults.Prompt)
	v.SetDefault("shell", defaults.Shell)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Config lookup order:
		// 1. .launchpad/config.yaml (current directory)
		// 2. ~/.config/launchpad/config.yaml (user config)
		if _, err := os.Stat(".launchpad/config.yaml"); err == nil {
			v.SetConfigFile(".launchpad/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "launchpad"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config %s: %w", configName(v, path), err)
		}

		// No config file found anywhere - create default at .launchpad/config.yaml
		defaultPath := ".launchpad/config.yaml"
		if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
			v.SetConfigFile(defaultPath)
			if err := v.ReadInConfig(); err != nil {
				return config.Config{}, fmt.Errorf("reading config %s: %w", defaultPath, err)
			}
		}
		// If write fails, just continue with defaults (no config file)
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config %s: %w", configName(v, path), err)
	}
	return c, nil
}

func configName(v *viper.Viper, path string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	if path != "" {
		return path
	}
	return "config.yaml"
}

// initLogging enables file logging when --debug or LAUNCHPAD_DEBUG is set.
// The returned cleanup is always safe to call.
func initLogging(prefix string) (func(), error) {
	debug := os.Getenv("LAUNCHPAD_DEBUG") != "" || debugFlag
	if !debug {
		return func() {}, nil
	}

	logPath := os.Getenv("LAUNCHPAD_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Launchpad starting", "version", version, "logPath", logPath, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// launcherConfig builds dispatcher settings from the loaded configuration.
func launcherConfig(c config.Config, width int) launcher.Config {
	return launcher.Config{
		Keymaps: c.Table(),
		QuitKey: c.QuitRune(),
		Prompt:  c.PromptText(),
		Width:   width,
	}
}

func runLauncher(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging("launchpad")
	if err != nil {
		return err
	}
	defer cleanup()

	if configErr != nil {
		log.ErrorErr(log.CatConfig, "Failed to load configuration", configErr)
		return configErr
	}
	if err := cfg.Validate(); err != nil {
		log.ErrorErr(log.CatConfig, "Invalid configuration", err)
		return fmt.Errorf("invalid configuration: %w", err)
	}
	styles.ApplyTheme(cfg.Theme.Accent, cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)

	tty, err := terminal.Open()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() { _ = tty.Close() }()

	width, _ := tty.Size()
	shell := runner.NewSystemShell(cfg.Shell)
	l := launcher.New(tty, runner.New(shell), launcherConfig(cfg, width))

	if err := l.Run(cmd.Context()); err != nil {
		return fmt.Errorf("running launcher: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
