package program

import (
	"strings"

	"github.com/wpkernel/phpgen/internal/php/ast"
)

// Markers bracketing the generated region of every file.
const (
	AutoGuardBegin = "WPK:BEGIN AUTO"
	AutoGuardEnd   = "WPK:END AUTO"
)

// Program is a rendered file.
type Program struct {
	Path  string
	Code  string
	Stmts []ast.Stmt
}

// Build renders entry into source text and a statement tree. Top-level
// statements, imports and namespace members carry startLine and endLine
// attributes pointing into the text.
func Build(e *Entry) Program {
	var text lineWriter
	text.add("<?php")

	declare := ast.NewDeclare(ast.NewDeclareItem("strict_types", ast.NewInt(1)))
	declareLine := text.add("declare(strict_types=1);")
	text.blank()

	var nsAttrs []ast.Attribute
	if len(e.docblock) > 0 {
		nsAttrs = append(nsAttrs, ast.Attribute{
			Key:   ast.AttrComments,
			Value: []*ast.Comment{ast.NewDocComment(e.docblock)},
		})
		for _, line := range strings.Split(ast.DocblockText(e.docblock), "\n") {
			text.add(line)
		}
	}

	var nsName *ast.Name
	nsStart := text.next()
	if len(e.namespaceParts) > 0 {
		nsName = ast.NewName(e.namespaceParts...)
		text.add("namespace " + nsName.String() + ";")
		text.blank()
	}

	var members []ast.Stmt

	uses := e.Uses()
	if len(uses) > 0 {
		lineOf := map[string]int{}
		for _, line := range groupUses(uses) {
			n := text.add("use " + line.text + ";")
			for _, key := range line.keys {
				lineOf[key] = n
			}
		}
		text.blank()
		for _, use := range uses {
			members = append(members, located(use.Node(), lineOf[use.Key], lineOf[use.Key]))
		}
	}

	begin := text.add("// " + AutoGuardBegin)
	members = append(members, located(ast.NewNop(ast.NewComment("// "+AutoGuardBegin)), begin, begin))

	offset := 0
	for i, stmt := range e.statements {
		span := e.spans[i]
		start := text.next()
		for _, line := range e.statementLines[offset : offset+span] {
			text.add(line)
		}
		offset += span
		members = append(members, located(stmt, start, max(start, text.next()-1)))
	}

	end := text.add("// " + AutoGuardEnd)
	members = append(members, located(ast.NewNop(ast.NewComment("// "+AutoGuardEnd)), end, end))

	namespace := ast.NewNamespace(nsName, members)
	nsAttrs = append(nsAttrs,
		ast.Attribute{Key: ast.AttrStartLine, Value: nsStart},
		ast.Attribute{Key: ast.AttrEndLine, Value: end},
	)
	namespace = ast.WithAttributes(namespace, ast.NewAttributes(nsAttrs...))

	return Program{
		Path: e.FilePath,
		Code: text.String(),
		Stmts: []ast.Stmt{
			located(declare, declareLine, declareLine),
			namespace,
		},
	}
}

func located[N ast.Stmt](node N, start, end int) N {
	return ast.MergeAttributes(node, ast.NewAttributes(
		ast.Attribute{Key: ast.AttrStartLine, Value: start},
		ast.Attribute{Key: ast.AttrEndLine, Value: end},
	))
}

type useLine struct {
	text string
	keys []string
}

// groupUses folds two or more plain imports that share a namespace prefix
// into one grouped import line. Everything else renders one per line.
func groupUses(uses []Use) []useLine {
	prefixCount := map[string]int{}
	for _, use := range uses {
		if prefix, ok := groupPrefix(use); ok {
			prefixCount[prefix]++
		}
	}

	var lines []useLine
	grouped := map[string]int{}
	for _, use := range uses {
		prefix, ok := groupPrefix(use)
		if !ok || prefixCount[prefix] < 2 {
			lines = append(lines, useLine{text: use.String(), keys: []string{use.Key}})
			continue
		}

		last := use.Parts[len(use.Parts)-1]
		if index, seen := grouped[prefix]; seen {
			lines[index].text = strings.TrimSuffix(lines[index].text, "}") + ", " + last + "}"
			lines[index].keys = append(lines[index].keys, use.Key)
			continue
		}
		grouped[prefix] = len(lines)
		lines = append(lines, useLine{text: prefix + `\{` + last + "}", keys: []string{use.Key}})
	}
	return lines
}

func groupPrefix(use Use) (string, bool) {
	if use.Kind != ast.UseNormal || use.Alias != "" || use.FullyQualified || len(use.Parts) < 2 {
		return "", false
	}
	return strings.Join(use.Parts[:len(use.Parts)-1], `\`), true
}

type lineWriter struct {
	lines []string
}

// add appends a line and returns its 1-based number.
func (w *lineWriter) add(line string) int {
	w.lines = append(w.lines, line)
	return len(w.lines)
}

func (w *lineWriter) blank() {
	w.add("")
}

// next returns the number the next added line will get.
func (w *lineWriter) next() int {
	return len(w.lines) + 1
}

func (w *lineWriter) String() string {
	return strings.Join(w.lines, "\n") + "\n"
}
