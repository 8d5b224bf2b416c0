package program

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
)

// CacheEvent records which cache segments a generated route touches.
type CacheEvent struct {
	Scope       string   `json:"scope"`
	Operation   string   `json:"operation"`
	Segments    []string `json:"segments"`
	Description string   `json:"description,omitempty"`
}

// RouteMetadata describes one generated route handler.
type RouteMetadata struct {
	Method        string            `json:"method"`
	Path          string            `json:"path"`
	Kind          string            `json:"kind"`
	CacheSegments []string          `json:"cacheSegments,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

// IdentityMetadata is the identity a controller resolves.
type IdentityMetadata struct {
	Type  string `json:"type"`
	Param string `json:"param"`
}

// Metadata describes an entry for reporting and inspection.
type Metadata struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Resource string            `json:"resource,omitempty"`
	Identity *IdentityMetadata `json:"identity,omitempty"`
	Routes   []RouteMetadata   `json:"routes,omitempty"`
	Cache    []CacheEvent      `json:"cache,omitempty"`
}

// Use is a normalised import.
type Use struct {
	Key            string
	Parts          []string
	Alias          string
	Kind           ast.UseKind
	FullyQualified bool
}

// String renders the import as written after "use".
func (u Use) String() string {
	var b strings.Builder
	switch u.Kind {
	case ast.UseFunction:
		b.WriteString("function ")
	case ast.UseConstant:
		b.WriteString("const ")
	}
	if u.FullyQualified {
		b.WriteString(`\`)
	}
	b.WriteString(strings.Join(u.Parts, `\`))
	if u.Alias != "" {
		b.WriteString(" as " + u.Alias)
	}
	return b.String()
}

// Node builds the Stmt_Use node for the import.
func (u Use) Node() *ast.Use {
	name := ast.NewName(u.Parts...)
	if u.FullyQualified {
		name = ast.NewFullyQualifiedName(u.Parts...)
	}
	var alias *ast.Identifier
	if u.Alias != "" {
		alias = ast.NewIdentifier(u.Alias)
	}
	return ast.NewUse(u.Kind, ast.NewUseItem(name, alias))
}

var aliasPattern = regexp.MustCompile(`(?i)^(.*)\s+as\s+(.+)$`)

// ParseUse normalises an import such as "function is_wp_error" or
// `Demo\Policy\Policy as Gate`. It reports false for an empty import.
func ParseUse(statement string) (Use, bool) {
	declaration := strings.TrimSpace(statement)
	if declaration == "" {
		return Use{}, false
	}

	kind := ast.UseNormal
	lower := strings.ToLower(declaration)
	switch {
	case strings.HasPrefix(lower, "function "):
		kind = ast.UseFunction
		declaration = declaration[len("function "):]
	case strings.HasPrefix(lower, "const "):
		kind = ast.UseConstant
		declaration = declaration[len("const "):]
	}

	alias := ""
	if match := aliasPattern.FindStringSubmatch(declaration); match != nil {
		declaration = match[1]
		alias = strings.TrimSpace(match[2])
	}
	declaration = strings.TrimSpace(declaration)

	parts := splitNamespace(declaration)
	if len(parts) == 0 {
		return Use{}, false
	}

	return Use{
		Key:            fmt.Sprintf("%d:%s::%s", kind, strings.Join(parts, `\`), alias),
		Parts:          parts,
		Alias:          alias,
		Kind:           kind,
		FullyQualified: strings.HasPrefix(declaration, `\`),
	}, true
}

// Entry accumulates one output file.
type Entry struct {
	Key      string
	FilePath string
	Metadata Metadata

	namespaceParts []string
	docblock       []string
	uses           map[string]Use
	statements     []ast.Stmt
	spans          []int
	statementLines []string
}

// Namespace returns the file namespace.
func (e *Entry) Namespace() string {
	return strings.Join(e.namespaceParts, `\`)
}

// NamespaceParts returns the namespace segments.
func (e *Entry) NamespaceParts() []string {
	return append([]string(nil), e.namespaceParts...)
}

// SetNamespace replaces the namespace.
func (e *Entry) SetNamespace(namespace string) {
	e.namespaceParts = splitNamespace(namespace)
}

// AppendDocblock adds lines to the file docblock.
func (e *Entry) AppendDocblock(lines ...string) {
	e.docblock = append(e.docblock, lines...)
}

// Docblock returns the file docblock lines.
func (e *Entry) Docblock() []string {
	return append([]string(nil), e.docblock...)
}

// AddUse records an import. Duplicates collapse.
func (e *Entry) AddUse(statement string) {
	if use, ok := ParseUse(statement); ok {
		e.uses[use.Key] = use
	}
}

// Uses returns the imports sorted by key, which orders classes before
// functions before constants.
func (e *Entry) Uses() []Use {
	uses := make([]Use, 0, len(e.uses))
	for _, use := range e.uses {
		uses = append(uses, use)
	}
	sort.Slice(uses, func(i, j int) bool { return uses[i].Key < uses[j].Key })
	return uses
}

// Append adds a statement and its lines.
func (e *Entry) Append(node ast.Stmt, lines []string) {
	e.statements = append(e.statements, node)
	e.spans = append(e.spans, len(lines))
	e.statementLines = append(e.statementLines, lines...)
}

// AppendPrintable adds a printable of any statement type.
func AppendPrintable[N ast.Stmt](e *Entry, p printable.Printable[N]) {
	e.Append(p.Node, p.Lines)
}

// Statements returns the appended statements.
func (e *Entry) Statements() []ast.Stmt {
	return append([]ast.Stmt(nil), e.statements...)
}

// StatementLines returns the appended lines.
func (e *Entry) StatementLines() []string {
	return append([]string(nil), e.statementLines...)
}

// RecordCache appends a cache event to the entry metadata.
func (e *Entry) RecordCache(event CacheEvent) {
	e.Metadata.Cache = append(e.Metadata.Cache, event)
}
