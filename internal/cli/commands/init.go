package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wpkernel/phpgen/internal/cli/config"
)

// promptConfig asks for the values init writes. Tests replace it.
var promptConfig = surveyConfig

// NewInitCommand creates the init command
func NewInitCommand(global *globalOptions) *cobra.Command {
	var interactive, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a phpgen.yml with the default settings",
		Long: `Write phpgen.yml into the config directory. With --interactive, prompt for
the descriptor file, output directory and namespace first.`,
		Example: `  phpgen init
  phpgen init --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(global.configDir, config.FileName+".yml")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if interactive {
				if err := promptConfig(&cfg); err != nil {
					return err
				}
			}
			if err := config.Validate(&cfg); err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			successColor := color.New(color.FgGreen, color.Bold)
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
			fmt.Fprintf(cmd.OutOrStdout(), "  1. Describe your resources in %s\n", cfg.Input)
			fmt.Fprintln(cmd.OutOrStdout(), "  2. Run 'phpgen generate'")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "I", false, "Prompt for each setting")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing phpgen.yml")

	return cmd
}

func surveyConfig(cfg *config.Config) error {
	questions := []*survey.Question{
		{
			Name:     "input",
			Prompt:   &survey.Input{Message: "Resource descriptor file:", Default: cfg.Input},
			Validate: survey.Required,
		},
		{
			Name:     "output",
			Prompt:   &survey.Input{Message: "Output directory:", Default: cfg.OutputDir},
			Validate: survey.Required,
		},
		{
			Name:   "namespace",
			Prompt: &survey.Input{Message: "PHP namespace root (blank to use the descriptor's):"},
		},
		{
			Name:   "lint",
			Prompt: &survey.Confirm{Message: "Syntax check generated PHP on every run?", Default: cfg.Lint},
		},
	}

	answers := struct {
		Input     string `survey:"input"`
		Output    string `survey:"output"`
		Namespace string `survey:"namespace"`
		Lint      bool   `survey:"lint"`
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	cfg.Input = answers.Input
	cfg.OutputDir = answers.Output
	cfg.Namespace = answers.Namespace
	cfg.Lint = answers.Lint
	return nil
}
