package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wpkernel/phpgen/internal/cli/config"
	"github.com/wpkernel/phpgen/internal/cli/ui"
	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/lint"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/report"
	"github.com/wpkernel/phpgen/internal/workspace"
	"github.com/wpkernel/phpgen/internal/wp/controller"
)

type generateOptions struct {
	input     string
	output    string
	namespace string
	resources []string
	dryRun    bool
	diff      bool
	noASTJSON bool
	lint      bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate PHP controllers from resource descriptors",
		Long: `Build one REST controller per resource and write it to the output directory.

Every resource is generated in a single run before anything is written; a
failure in any resource aborts the run and leaves the output untouched.
Files whose content is unchanged are not rewritten.`,
		Example: `  # Generate from kernel.yml into inc/
  phpgen generate

  # Preview what would change
  phpgen generate --dry-run

  # Generate one resource and check the PHP syntax
  phpgen generate --resource books --lint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.load()
			if err != nil {
				return err
			}
			opts.apply(cfg)
			return runGenerate(cmd, global.configDir, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Resource descriptor file (default: input from phpgen.yml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default: output_dir from phpgen.yml)")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "PHP namespace root override")
	cmd.Flags().StringSliceVarP(&opts.resources, "resource", "r", nil, "Only generate the named resources")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would be written without writing")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a line diff of every PHP file that changes")
	cmd.Flags().BoolVar(&opts.noASTJSON, "no-ast-json", false, "Skip the .ast.json artifacts")
	cmd.Flags().BoolVar(&opts.lint, "lint", false, "Syntax check the generated PHP before writing")
	_ = cmd.RegisterFlagCompletionFunc("resource", completeResources(global))

	return cmd
}

func (o *generateOptions) apply(cfg *config.Config) {
	if o.input != "" {
		cfg.Input = o.input
	}
	if o.output != "" {
		cfg.OutputDir = o.output
	}
	if o.namespace != "" {
		cfg.Namespace = o.namespace
	}
	if o.noASTJSON {
		cfg.ASTJSON = false
	}
	if o.lint {
		cfg.Lint = true
	}
}

func runGenerate(cmd *cobra.Command, root string, cfg *config.Config, opts *generateOptions) error {
	log := report.New(cfg.LogLevel, cfg.NoColor)
	defer report.Sync(log)

	project, err := loadProject(root, cfg, opts.resources, cmd)
	if err != nil {
		return err
	}

	run := program.NewContext()
	log.Info("Generating controllers",
		"run", run.RunID.String(),
		"input", cfg.Input,
		"resources", len(project.Resources),
	)

	if warnings := controller.ProjectWarnings(project); warnings.HasWarnings() {
		for _, warning := range warnings {
			fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(errors.FormatCompact(warning), nil, cfg.NoColor))
		}
	}

	entries, err := controller.BuildAll(run, project, controller.Options{
		Namespace: cfg.Namespace,
		OutputDir: cfg.OutputDir,
		Reporter:  log,
	})
	if err != nil {
		if failures, ok := errors.AsList(err); ok && failures.HasErrors() {
			ui.WriteError(cmd.ErrOrStderr(), ui.ErrorOptions{
				Level:   ui.ErrorLevelError,
				Context: "Generation failed",
				Problem: fmt.Sprintf("%d of %d resource(s) failed, nothing was written", len(failures), len(project.Resources)),
				NoColor: cfg.NoColor,
			})
		}
		return err
	}

	if cfg.Lint {
		if err := lintEntries(contextOf(cmd), entries); err != nil {
			return err
		}
	}

	ws := workspace.NewOS(root, workspace.WithDryRun(opts.dryRun))
	if opts.diff {
		printDiffs(cmd, ws, entries, cfg.NoColor)
	}
	results, err := program.WriteAll(ws, run.Channel(), program.WriteOptions{ASTJSON: cfg.ASTJSON})
	for _, result := range results {
		printResult(cmd, result, cfg.NoColor)
		log.Info("File processed",
			"run", run.RunID.String(),
			"path", result.Path,
			"status", string(result.Status),
			"hash", result.Hash,
		)
	}
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("%d controller(s), %d file(s)", len(entries), len(results))
	if opts.dryRun {
		summary += " (dry run)"
	}
	ui.WriteSuccess(cmd.OutOrStdout(), summary, cfg.NoColor)
	return nil
}

// loadProject reads the descriptor file relative to root and narrows it to
// the requested resources.
func loadProject(root string, cfg *config.Config, only []string, cmd *cobra.Command) (*ir.Project, error) {
	input := cfg.Input
	if !filepath.IsAbs(input) {
		input = filepath.Join(root, input)
	}
	project, err := ir.Load(input)
	if err != nil {
		return nil, err
	}
	if len(only) == 0 {
		return project, nil
	}

	byName := make(map[string]ir.Resource, len(project.Resources))
	names := make([]string, 0, len(project.Resources))
	for _, resource := range project.Resources {
		byName[resource.Name] = resource
		names = append(names, resource.Name)
	}

	selected := make([]ir.Resource, 0, len(only))
	for _, name := range only {
		resource, ok := byName[name]
		if !ok {
			fmt.Fprint(cmd.ErrOrStderr(), ui.ResourceNotFoundError(name, ui.Suggest(name, names), cfg.NoColor))
			return nil, fmt.Errorf("unknown resource %q", name)
		}
		selected = append(selected, resource)
	}
	project.Resources = selected
	return project, nil
}

func lintEntries(ctx context.Context, entries []*program.Entry) error {
	for _, entry := range entries {
		built := program.Build(entry)
		if err := lint.Validate(ctx, built.Path, []byte(built.Code)); err != nil {
			return err
		}
	}
	return nil
}

// printDiffs compares each entry's source with the file already in ws.
func printDiffs(cmd *cobra.Command, ws workspace.Workspace, entries []*program.Entry, noColor bool) {
	for _, entry := range entries {
		built := program.Build(entry)
		existing, err := ws.Read(built.Path)
		if err != nil {
			existing = nil
		}
		workspace.Diff(built.Path, string(existing), built.Code).Render(cmd.OutOrStdout(), 3, noColor)
	}
}

func printResult(cmd *cobra.Command, result workspace.Result, noColor bool) {
	var c *color.Color
	var symbol, verb string
	switch result.Status {
	case workspace.StatusWritten:
		c, symbol, verb = color.New(color.FgGreen), "✓", "wrote"
	case workspace.StatusPlanned:
		c, symbol, verb = color.New(color.FgYellow), "~", "would write"
	default:
		c, symbol, verb = color.New(color.FgHiBlack), "=", "unchanged"
	}
	if noColor {
		c.DisableColor()
	}
	c.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", symbol, verb, result.Path)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
