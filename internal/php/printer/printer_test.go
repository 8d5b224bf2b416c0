package printer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
)

func request() *ast.Variable { return ast.NewVariable("request") }

func TestExpr(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"variable", ast.NewVariable("post_id"), "$post_id"},
		{"escaped string", ast.NewString(`it's a \ test`), `'it\'s a \\ test'`},
		{"int", ast.NewInt(-4), "-4"},
		{"float", ast.NewFloat(1.5), "1.5"},
		{"integral float", ast.NewFloat(2), "2.0"},
		{"null", ast.NewNull(), "null"},
		{"empty short array", ast.NewArray(), "[]"},
		{"empty long array", ast.NewLongArray(), "array()"},
		{
			"long array",
			ast.NewLongArray(ast.NewKeyedArrayItem(ast.NewString("status"), ast.NewInt(400))),
			"array( 'status' => 400 )",
		},
		{
			"method call",
			ast.NewMethodCall(request(), "get_param", ast.Args(ast.NewString("status"))...),
			"$request->get_param( 'status' )",
		},
		{"no args", ast.NewFuncCall("get_the_ID"), "get_the_ID()"},
		{
			"static call",
			ast.NewStaticCall(ast.NewName("Policy"), "enforce", ast.Args(ast.NewString("books.create"), request())...),
			"Policy::enforce( 'books.create', $request )",
		},
		{"new", ast.NewNew(ast.NewName("WP_Term_Query")), "new WP_Term_Query()"},
		{
			"dim fetch string",
			ast.NewArrayDimFetch(ast.NewVariable("post_data"), ast.NewString("post_status")),
			"$post_data['post_status']",
		},
		{
			"dim fetch variable",
			ast.NewArrayDimFetch(ast.NewVariable("query_args"), ast.NewVariable("key")),
			"$query_args[ $key ]",
		},
		{"dim append", ast.NewArrayDimFetch(ast.NewVariable("items"), nil), "$items[]"},
		{
			"not instanceof",
			ast.NewBooleanNot(ast.NewInstanceof(ast.NewVariable("post"), ast.NewName("WP_Post"))),
			"! $post instanceof WP_Post",
		},
		{
			"not binary",
			ast.NewBooleanNot(ast.NewBinaryOp(ast.OpIdentical, ast.NewNull(), ast.NewVariable("id"))),
			"! ( null === $id )",
		},
		{
			"cast",
			ast.NewCast(ast.CastInt, ast.NewPropertyFetch(ast.NewVariable("post"), "ID")),
			"(int) $post->ID",
		},
		{
			"precedence",
			ast.NewBinaryOp(ast.OpMul,
				ast.NewBinaryOp(ast.OpMinus, ast.NewVariable("page"), ast.NewInt(1)),
				ast.NewVariable("per_page")),
			"( $page - 1 ) * $per_page",
		},
		{
			"or of not and identical",
			ast.NewBinaryOp(ast.OpBooleanOr,
				ast.NewBooleanNot(ast.NewFuncCall("is_string", ast.Args(ast.NewVariable("slug"))...)),
				ast.NewBinaryOp(ast.OpIdentical, ast.NewString(""), ast.NewFuncCall("trim", ast.Args(ast.NewVariable("slug"))...))),
			"! is_string( $slug ) || '' === trim( $slug )",
		},
		{
			"right associativity",
			ast.NewBinaryOp(ast.OpMinus, ast.NewVariable("a"), ast.NewBinaryOp(ast.OpMinus, ast.NewVariable("b"), ast.NewVariable("c"))),
			"$a - ( $b - $c )",
		},
		{
			"ternary",
			ast.NewTernary(
				ast.NewFuncCall("is_numeric", ast.Args(ast.NewVariable("v"))...),
				ast.NewCast(ast.CastInt, ast.NewVariable("v")),
				ast.NewInt(0)),
			"is_numeric( $v ) ? (int) $v : 0",
		},
		{"short ternary", ast.NewTernary(ast.NewVariable("a"), nil, ast.NewVariable("b")), "$a ?: $b"},
		{"empty", ast.NewEmpty(ast.NewVariable("meta_query")), "empty( $meta_query )"},
	}

	p := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := p.Expr(tt.expr, 0)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, lines)
		})
	}
}

func TestMultilineArray(t *testing.T) {
	arr := ast.Multiline(ast.NewLongArray(
		ast.NewKeyedArrayItem(ast.NewString("post_type"), ast.NewVariable("post_type")),
		ast.NewKeyedArrayItem(ast.NewString("fields"), ast.NewString("ids")),
	))
	stmt := ast.NewExpression(ast.NewAssign(ast.NewVariable("post_data"), arr))

	lines, err := Default().Stmt(stmt, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"                $post_data = array(",
		"                        'post_type' => $post_type,",
		"                        'fields' => 'ids',",
		"                );",
	}, lines)
}

func TestNestedMultilineForcesParent(t *testing.T) {
	inner := ast.Multiline(ast.NewArray(ast.NewArrayItem(ast.NewInt(1))))
	outer := ast.NewArray(ast.NewKeyedArrayItem(ast.NewString("ids"), inner))

	lines, err := Default().Stmt(ast.NewReturn(outer), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"return [",
		"        'ids' => [",
		"                1,",
		"        ],",
		"];",
	}, lines)
}

func TestMultilineCall(t *testing.T) {
	call := ast.MergeAttributes(
		ast.NewFuncCall("wp_set_object_terms", ast.Args(
			ast.NewVariable("post_id"),
			ast.NewVariable("terms"),
			ast.NewString("genre"),
			ast.NewFalse(),
		)...),
		ast.NewAttributes(ast.Attribute{Key: ast.AttrMultiline, Value: true}),
	)
	stmt := ast.NewExpression(ast.NewAssign(ast.NewVariable("result"), call))

	lines, err := Default().Stmt(stmt, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"        $result = wp_set_object_terms(",
		"                $post_id,",
		"                $terms,",
		"                'genre',",
		"                false",
		"        );",
	}, lines)
}

func TestIfElse(t *testing.T) {
	stmt := ast.NewIf(
		ast.NewBinaryOp(ast.OpSmallerOrEqual, ast.NewVariable("page"), ast.NewInt(0)),
		[]ast.Stmt{ast.NewExpression(ast.NewAssign(ast.NewVariable("page"), ast.NewInt(1)))},
	)
	stmt.ElseIfs = []*ast.ElseIf{ast.NewElseIf(
		ast.NewBinaryOp(ast.OpGreater, ast.NewVariable("page"), ast.NewInt(100)),
		[]ast.Stmt{ast.NewExpression(ast.NewAssign(ast.NewVariable("page"), ast.NewInt(100)))},
	)}
	stmt.Else = ast.NewElse([]ast.Stmt{ast.NewReturn(nil)})

	lines, err := Default().Stmt(stmt, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"        if ( $page <= 0 ) {",
		"                $page = 1;",
		"        } elseif ( $page > 100 ) {",
		"                $page = 100;",
		"        } else {",
		"                return;",
		"        }",
	}, lines)
}

func TestLoopsAndJumps(t *testing.T) {
	foreach := ast.NewForeach(
		ast.NewVariable("extra_args"),
		ast.NewVariable("key"),
		ast.NewVariable("value"),
		[]ast.Stmt{
			ast.NewIf(ast.NewFuncCall("is_null", ast.Args(ast.NewVariable("value"))...), []ast.Stmt{ast.NewContinue(nil)}),
			ast.NewUnset(ast.NewVariable("value")),
			ast.NewBreak(ast.NewInt(2)),
		},
	)

	lines, err := Default().Stmt(foreach, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"foreach ( $extra_args as $key => $value ) {",
		"        if ( is_null( $value ) ) {",
		"                continue;",
		"        }",
		"        unset( $value );",
		"        break 2;",
		"}",
	}, lines)
}

func TestSwitch(t *testing.T) {
	stmt := ast.NewSwitch(ast.NewVariable("type"),
		ast.NewCase(ast.NewString("a"), []ast.Stmt{ast.NewBreak(nil)}),
		ast.NewCase(nil, []ast.Stmt{ast.NewReturn(ast.NewNull())}),
	)

	lines, err := Default().Stmt(stmt, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"switch ( $type ) {",
		"        case 'a':",
		"                break;",
		"        default:",
		"                return null;",
		"}",
	}, lines)
}

func TestCommentsPrintBeforeStatement(t *testing.T) {
	nop := ast.NewNop(ast.NewComment("// @wp-kernel mutation:status normalise"))
	doc := ast.WithComments(ast.NewReturn(ast.NewTrue()), ast.NewDocComment([]string{"a", "b"}))

	lines, err := Default().Stmts([]ast.Stmt{nop, doc}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"        // @wp-kernel mutation:status normalise",
		"        /**",
		"         * a",
		"         * b",
		"         */",
		"        return true;",
	}, lines)
}

func TestDeclareAndMembers(t *testing.T) {
	p := Default()

	lines, err := p.Stmt(ast.NewDeclare(ast.NewDeclareItem("strict_types", ast.NewInt(1))), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"declare(strict_types=1);"}, lines)

	lines, err = p.Stmt(ast.NewClassConst(ast.ModifierPrivate, "LIMIT", ast.NewInt(100)), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"        private const LIMIT = 100;"}, lines)

	lines, err = p.Stmt(ast.NewProperty(ast.ModifierProtected, ast.NewNullableType(ast.NewIdentifier("string")), "slug", nil), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"        protected ?string $slug;"}, lines)
}

func TestClosure(t *testing.T) {
	closure := ast.NewClosure(true,
		[]*ast.Param{ast.NewParam(ast.NewVariable("value"), nil)},
		[]*ast.ClosureUse{ast.NewClosureUse(ast.NewVariable("taxonomy"), false)},
		ast.NewIdentifier("int"),
		[]ast.Stmt{ast.NewReturn(ast.NewCast(ast.CastInt, ast.NewVariable("value")))},
	)

	lines, err := Default().Stmt(ast.NewExpression(ast.NewAssign(ast.NewVariable("fn"), closure)), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"        $fn = static function ( $value ) use ( $taxonomy ): int {",
		"                return (int) $value;",
		"        };",
	}, lines)
}

func TestErrors(t *testing.T) {
	p := Default()

	_, err := p.Expr(ast.NewFloat(math.Inf(1)), 0)
	assert.True(t, errors.Is(err, errors.ErrNonFiniteNumber))

	_, err = p.Expr(ast.NewBinaryOp("Spaceship", ast.NewInt(1), ast.NewInt(2)), 0)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedOperator))

	_, err = p.Expr(ast.NewCast("Object", ast.NewInt(1)), 0)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedOperator))

	_, err = p.Expr(ast.NewVariable(""), 0)
	assert.True(t, errors.Is(err, errors.ErrEmptyName))

	_, err = p.Stmt(ast.NewNamespace(ast.NewName("Demo"), nil), 0)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedNode))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'O\'Reilly'`, Quote("O'Reilly"))
	assert.Equal(t, `\\\'`, EscapeSingleQuotes(`\'`))
}

func TestModifiers(t *testing.T) {
	assert.Equal(t, []string{"final", "public", "static"}, Modifiers(ast.ModifierFinal|ast.ModifierPublic|ast.ModifierStatic))
	assert.Nil(t, Modifiers(0))
}
