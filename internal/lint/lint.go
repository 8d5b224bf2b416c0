// Package lint parses generated PHP with tree-sitter and reports the nodes
// the parser had to recover from.
package lint

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/wpkernel/phpgen/internal/errors"
)

// Issue kinds.
const (
	KindError   = "ERROR"
	KindMissing = "MISSING"
)

// Issue is one syntax problem. Line and Column are 1-based.
type Issue struct {
	Path   string
	Line   int
	Column int
	Kind   string
	// Node is the node type for MISSING issues, such as ";".
	Node string
}

func (i Issue) String() string {
	if i.Kind == KindMissing {
		return fmt.Sprintf("%s:%d:%d: missing %s", i.Path, i.Line, i.Column, i.Node)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error", i.Path, i.Line, i.Column)
}

// Check parses content as PHP and returns every ERROR and MISSING node in
// document order. Children of an ERROR node are not reported separately.
func Check(ctx context.Context, path string, content []byte) ([]Issue, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(php.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.NewGenerationFailed("parse "+path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil, nil
	}

	var issues []Issue
	collect(root, path, &issues)
	return issues, nil
}

func collect(node *sitter.Node, path string, issues *[]Issue) {
	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()
		issue := Issue{
			Path:   path,
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
			Kind:   KindError,
		}
		if node.IsMissing() {
			issue.Kind = KindMissing
			issue.Node = node.Type()
		}
		*issues = append(*issues, issue)
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collect(child, path, issues)
		}
	}
}

// Validate is Check reduced to a GEN607 error carrying the first issue.
func Validate(ctx context.Context, path string, content []byte) error {
	issues, err := Check(ctx, path, content)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}
	first := issues[0]
	return errors.NewSyntaxError(path, first.Line, first.Column, len(issues))
}
