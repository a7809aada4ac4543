package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/dirsh/internal/config"
	"github.com/harrison/dirsh/internal/logger"
	"github.com/harrison/dirsh/internal/shell"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dirsh
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirsh",
		Short: "Interactive shell for navigating and searching directory trees",
		Long: `dirsh is an interactive command loop over the local filesystem.

It tracks a working directory and answers cd, ls, show, hide and find
commands, where find recursively searches directory trees for paths that
match regular expressions, optionally filtered by size, depth, type and
permissions. Type "help" at the prompt for the list of commands.

Configuration is loaded from ~/.dirsh.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		Args:    cobra.NoArgs,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE:         runShell,
	}

	cmd.Flags().String("config", "", "Path to config file (default: ~/.dirsh.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("dir", "", "Start directory (default: current directory)")
	cmd.Flags().Bool("show-hidden", false, "Start with hidden entries visible")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// runShell implements the root command logic
func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	applyColor(cfg.Color)

	startDir, err := startDirectory(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := buildLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log.LogDebug(fmt.Sprintf("starting in %s", startDir))

	sh := shell.New(shell.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Logger: log,
		Session: shell.Session{
			Cwd:        startDir,
			ShowHidden: cfg.ShowHidden,
		},
		PermissionMatch: cfg.PermissionMode(),
		Interactive:     isInteractive(cmd.InOrStdin()),
		Prompt:          cfg.Prompt,
	})
	return sh.Run()
}

// loadConfig reads the config file and applies CLI overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	} else {
		expanded, err := config.ExpandHome(configPath)
		if err != nil {
			return nil, err
		}
		configPath = expanded
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logLevel *string
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		logLevel = &level
	}
	var showHidden *bool
	if cmd.Flags().Changed("show-hidden") {
		show, _ := cmd.Flags().GetBool("show-hidden")
		showHidden = &show
	}
	var noColor *bool
	if cmd.Flags().Changed("no-color") {
		disable, _ := cmd.Flags().GetBool("no-color")
		noColor = &disable
	}
	cfg.MergeWithFlags(logLevel, showHidden, noColor)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyColor sets the process-wide colour switch. "auto" keeps the
// terminal detection fatih/color performs at startup.
func applyColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// startDirectory resolves --dir (or the process working directory) to an
// absolute directory path.
func startDirectory(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return wd, nil
	}

	expanded, err := config.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("start directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("start directory %s is not a directory", abs)
	}
	return abs, nil
}

// buildLogger creates the console logger and, when log_file is set, a file
// logger alongside it. The returned func closes the file logger.
func buildLogger(stderr io.Writer, cfg *config.Config) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(stderr, cfg.LogLevel)
	if cfg.LogFile == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up file logging: %w", err)
	}
	return logger.NewMultiLogger(console, fileLog), func() { fileLog.Close() }, nil
}

// isInteractive reports whether in is a terminal, in which case the shell prints a prompt.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
