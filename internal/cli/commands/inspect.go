package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/wpkernel/phpgen/internal/cli/ui"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/wp/controller"
)

// nodeTypes selects every node type in a persisted syntax tree.
var nodeTypes = jp.MustParseString("$..nodeType")

// NewInspectCommand creates the inspect command
func NewInspectCommand(global *globalOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "inspect [file.ast.json]",
		Short: "Inspect generated syntax trees or planned controllers",
		Long: `With a file argument, summarise a generated .ast.json artifact: a count of
every node type, or the matches of a JSONPath query.

Without an argument, build the controllers for the configured descriptors in
memory and list each controller's routes and cache events. Nothing is written.`,
		Example: `  # Node type histogram
  phpgen inspect inc/Rest/BooksController.php.ast.json

  # Names of every generated method
  phpgen inspect inc/Rest/BooksController.php.ast.json --query '$..stmts[?(@.nodeType == "Stmt_ClassMethod")].name.name'

  # Routes and cache events for kernel.yml
  phpgen inspect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if query != "" {
					return fmt.Errorf("--query needs an .ast.json file argument")
				}
				return inspectControllers(cmd, global)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			tree, err := oj.Parse(data)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			noColor := global.noColor
			if query != "" {
				return queryTree(cmd.OutOrStdout(), tree, query)
			}
			ui.Header(cmd.OutOrStdout(), args[0], noColor)
			NodeHistogram(cmd.OutOrStdout(), tree, noColor)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "JSONPath expression evaluated against the tree")

	return cmd
}

// NodeHistogram prints how often each node type occurs in tree, most
// frequent first.
func NodeHistogram(w io.Writer, tree any, noColor bool) {
	counts := map[string]int{}
	for _, value := range nodeTypes.Get(tree) {
		if name, ok := value.(string); ok {
			counts[name]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	table := ui.NewTable(w, noColor, "Node", "Count").AlignRight(1)
	for _, name := range names {
		table.AddRow(name, strconv.Itoa(counts[name]))
	}
	table.Render()
}

func queryTree(w io.Writer, tree any, query string) error {
	x, err := jp.ParseString(query)
	if err != nil {
		return fmt.Errorf("invalid jsonpath '%s': %w", query, err)
	}
	for _, match := range x.Get(tree) {
		fmt.Fprintln(w, oj.JSON(match, &ojg.Options{Indent: 2, Sort: true}))
	}
	return nil
}

func inspectControllers(cmd *cobra.Command, global *globalOptions) error {
	cfg, err := global.load()
	if err != nil {
		return err
	}
	project, err := loadProject(global.configDir, cfg, nil, cmd)
	if err != nil {
		return err
	}

	run := program.NewContext()
	entries, err := controller.BuildAll(run, project, controller.Options{
		Namespace: cfg.Namespace,
		OutputDir: cfg.OutputDir,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		DescribeEntry(out, entry, cfg.NoColor)
	}
	return nil
}

// DescribeEntry prints an entry's routes and cache events.
func DescribeEntry(w io.Writer, entry *program.Entry, noColor bool) {
	meta := entry.Metadata
	title := fmt.Sprintf("%s (%s)", entry.FilePath, meta.Resource)
	if meta.Identity != nil {
		title += fmt.Sprintf(" identity %s:%s", meta.Identity.Param, meta.Identity.Type)
	}
	ui.Header(w, title, noColor)

	routes := ui.NewTable(w, noColor, "Method", "Path", "Kind", "Cache", "Tags")
	for _, route := range meta.Routes {
		routes.AddRow(route.Method, route.Path, route.Kind, strings.Join(route.CacheSegments, "."), formatTags(route.Tags))
	}
	routes.Render()

	if len(meta.Cache) > 0 {
		fmt.Fprintln(w)
		events := ui.NewTable(w, noColor, "Scope", "Operation", "Segments", "Description")
		for _, event := range meta.Cache {
			events.AddRow(event.Scope, event.Operation, strings.Join(event.Segments, "."), event.Description)
		}
		events.Render()
	}
	fmt.Fprintln(w)
}

func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + "=" + tags[key]
	}
	return strings.Join(pairs, ",")
}
