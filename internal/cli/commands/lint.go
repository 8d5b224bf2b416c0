package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wpkernel/phpgen/internal/cli/ui"
	"github.com/wpkernel/phpgen/internal/lint"
	"github.com/wpkernel/phpgen/internal/utils"
)

// NewLintCommand creates the lint command
func NewLintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file.php|dir>...",
		Short: "Check PHP files for syntax errors",
		Long: `Parse each file with the tree-sitter PHP grammar and report every node the
parser had to recover from. Directories are searched for .php files.
Exits non-zero when any file has an issue.`,
		Example: `  phpgen lint inc/Rest/BooksController.php
  phpgen lint inc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor := color.NoColor
			failed := 0

			files, err := utils.ExpandFiles(args, ".php")
			if err != nil {
				return err
			}
			for _, file := range files {
				content, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}

				issues, err := lint.Check(contextOf(cmd), file, content)
				if err != nil {
					return err
				}
				if len(issues) == 0 {
					ui.WriteSuccess(cmd.OutOrStdout(), file, noColor)
					continue
				}

				failed++
				lines := make([]string, len(issues))
				for i, issue := range issues {
					lines[i] = issue.String()
				}
				fmt.Fprint(cmd.ErrOrStderr(), ui.LintError(file, lines, noColor))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed the syntax check", failed, len(files))
			}
			return nil
		},
	}
}
