package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wpkernel/phpgen/internal/cli/config"
	"github.com/wpkernel/phpgen/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configDir string
	logLevel  string
	noColor   bool
}

// load reads phpgen.yml from the config directory and applies the global
// flag overrides.
func (g *globalOptions) load() (*config.Config, error) {
	cfg, err := config.Load(g.configDir)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.noColor {
		cfg.NoColor = true
	}
	return cfg, nil
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	global := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "phpgen",
		Short: "Generate WordPress REST controllers from resource descriptors",
		Long: color.CyanString(`phpgen - PHP REST controller generator

phpgen reads resource descriptors (kernel.yml) and emits one PHP controller
class per resource, with a JSON syntax tree beside every file.

Features:
  • wp-post and wp-taxonomy list, get and mutation handlers
  • Policy guards and WP_Error passthrough on every route
  • Deterministic output, unchanged files are never rewritten
  • Optional tree-sitter syntax check of the generated PHP`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&global.configDir, "config", ".", "Directory containing phpgen.yml")
	flags.StringVar(&global.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log_level)")
	flags.BoolVar(&global.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand(global))
	rootCmd.AddCommand(NewInspectCommand(global))
	rootCmd.AddCommand(NewLintCommand())
	rootCmd.AddCommand(NewInitCommand(global))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the phpgen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "phpgen version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(rootCmd.ErrOrStderr(), ui.FormatGeneratorError(err, color.NoColor))
		return err
	}
	return nil
}
