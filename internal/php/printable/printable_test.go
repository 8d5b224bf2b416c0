package printable

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
)

func TestNewCopiesLines(t *testing.T) {
	lines := []string{"return;"}
	p := New[ast.Stmt](ast.NewReturn(nil), lines)
	lines[0] = "changed"

	assert.Equal(t, []string{"return;"}, p.Lines)
}

func TestRenderExpressionScalars(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		want     string
		nodeType string
	}{
		{"string", "it's", `'it\'s'`, "Scalar_String"},
		{"int", 42, "42", "Scalar_LNumber"},
		{"integral float", 3.0, "3", "Scalar_LNumber"},
		{"float", 0.5, "0.5", "Scalar_DNumber"},
		{"true", true, "true", "Expr_ConstFetch"},
		{"nil", nil, "null", "Expr_ConstFetch"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), "'1180591620717411303424'", "Scalar_String"},
		{"large uint", uint64(math.MaxUint64), "'18446744073709551615'", "Scalar_String"},
		{"empty slice", []string{}, "[]", "Expr_Array"},
		{"empty map", map[string]any{}, "[]", "Expr_Array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := RenderExpression(tt.value, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{Indent(1) + tt.want}, p.Lines)
			assert.Equal(t, tt.nodeType, p.Node.NodeType())
		})
	}
}

func TestRenderExpressionNested(t *testing.T) {
	value := NewOrderedMap().
		Set("type", "string").
		Set("enum", []any{"draft", "publish"}).
		Set("required", false)

	p, err := RenderExpression(value, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"                [",
		"                        'type' => 'string',",
		"                        'enum' => [",
		"                                'draft',",
		"                                'publish',",
		"                        ],",
		"                        'required' => false,",
		"                ]",
	}, p.Lines)

	arr, ok := p.Node.(*ast.Array)
	require.True(t, ok)
	require.Len(t, arr.Items, 3)
	assert.Equal(t, ast.ArrayKindShort, arr.Attributes().Int(ast.AttrKind))
}

func TestRenderExpressionSortsMapKeys(t *testing.T) {
	p, err := RenderExpression(map[string]int{"b": 2, "a": 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"[", "        'a' => 1,", "        'b' => 2,", "]"}, p.Lines)
}

func TestRenderReturnMatchesExpression(t *testing.T) {
	values := []any{"slug", 7, 1.25, true, nil, []any{1, "two"}, map[string]any{"per_page": 10}}

	for _, value := range values {
		expr, err := RenderExpression(value, 2)
		require.NoError(t, err)
		ret, err := RenderReturn(value, 2)
		require.NoError(t, err)

		require.Len(t, ret.Lines, len(expr.Lines))
		indent := Indent(2)
		last := len(ret.Lines) - 1
		if last == 0 {
			assert.Equal(t, indent+"return "+strings.TrimPrefix(expr.Lines[0], indent)+";", ret.Lines[0])
		} else {
			assert.Equal(t, indent+"return "+strings.TrimPrefix(expr.Lines[0], indent), ret.Lines[0])
			assert.Equal(t, expr.Lines[last]+";", ret.Lines[last])
			for i := 1; i < last; i++ {
				assert.Equal(t, expr.Lines[i], ret.Lines[i])
			}
		}

		stmt, ok := ret.Node.(*ast.Return)
		require.True(t, ok)
		assert.Equal(t, expr.Node, stmt.Expr)
	}
}

func TestRenderReturnSingleLine(t *testing.T) {
	p, err := RenderReturn([]any{}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"                return [];"}, p.Lines)
}

func TestRenderRejectsUnsupportedValues(t *testing.T) {
	_, err := RenderExpression(math.Inf(1), 0)
	assert.True(t, errors.Is(err, errors.ErrNonFiniteNumber))

	_, err = RenderExpression([]any{1, math.NaN()}, 0)
	assert.True(t, errors.Is(err, errors.ErrNonFiniteNumber))

	_, err = RenderExpression(make(chan int), 0)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValue))

	_, err = RenderExpression(map[int]string{1: "a"}, 0)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValue))

	_, err = RenderExpression(struct{ Name string }{"x"}, 0)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValue))
}

func TestFromStmtAndCatch(t *testing.T) {
	p, err := FromStmt(ast.NewReturn(ast.NewVariable("items")), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"        return $items;"}, p.Lines)

	run := func() (err error) {
		defer Catch(&err)
		Stmt(ast.NewReturn(ast.NewVariable("")), 0)
		return nil
	}
	assert.True(t, errors.Is(run(), errors.ErrEmptyName))
}

func TestInline(t *testing.T) {
	call := ast.NewFuncCall("array_map", ast.Args(ast.NewString("intval"), ast.NewCast(ast.CastArray, ast.NewVariable("terms")))...)
	assert.Equal(t, "array_map( 'intval', (array) $terms )", Inline(call))
}

func TestOrderedMapKeepsFirstPosition(t *testing.T) {
	m := NewOrderedMap().Set("a", 1).Set("b", 2).Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	value, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestBlankIsSkippedByNodes(t *testing.T) {
	ret := Stmt(ast.NewReturn(nil), 0)
	items := []Statement{Blank(), ret, Blank()}

	assert.Equal(t, []string{"", "return;", ""}, Lines(items))
	nodes := Nodes(items)
	require.Len(t, nodes, 1)
	assert.Same(t, ret.Node, nodes[0])
}
