package printable

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strings"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
)

// OrderedMap is a string-keyed map that renders in insertion order. Plain Go
// maps render with their keys sorted.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]any{}}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (m *OrderedMap) Set(key string, value any) *OrderedMap {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// RenderExpression renders a Go value as a PHP literal expression at level.
//
// Slices and maps become short-syntax arrays with one entry per line and a
// trailing comma; empty collections render as []. Integral floats render as
// integers, *big.Int as a decimal string. NaN, infinities and values with no
// literal form are rejected.
func RenderExpression(value any, level int) (Expression, error) {
	expr, err := valueNode(value)
	if err != nil {
		return Expression{}, err
	}
	return FromExpr(expr, level)
}

// RenderReturn renders "return <value>;" at level.
func RenderReturn(value any, level int) (Statement, error) {
	rendered, err := RenderExpression(value, level)
	if err != nil {
		return Statement{}, err
	}

	indent := Indent(level)
	lines := append([]string(nil), rendered.Lines...)
	lines[0] = indent + "return " + strings.TrimPrefix(lines[0], indent)
	lines[len(lines)-1] += ";"

	return Statement{Node: ast.NewReturn(rendered.Node), Lines: lines}, nil
}

func valueNode(value any) (ast.Expr, error) {
	switch v := value.(type) {
	case nil:
		return ast.NewNull(), nil
	case ast.Expr:
		return v, nil
	case bool:
		return ast.NewBool(v), nil
	case string:
		return ast.NewString(v), nil
	case int:
		return ast.NewInt(int64(v)), nil
	case int64:
		return ast.NewInt(v), nil
	case float64:
		return floatNode(v)
	case float32:
		return floatNode(float64(v))
	case *big.Int:
		if v == nil {
			return ast.NewNull(), nil
		}
		return ast.NewString(v.String()), nil
	case *OrderedMap:
		items := make([]*ast.ArrayItem, 0, v.Len())
		for _, key := range v.keys {
			item, err := keyedItem(key, v.values[key])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return arrayNode(items), nil
	}

	return reflectNode(reflect.ValueOf(value))
}

func reflectNode(rv reflect.Value) (ast.Expr, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.NewInt(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return ast.NewString(fmt.Sprintf("%d", u)), nil
		}
		return ast.NewInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return floatNode(rv.Float())

	case reflect.Bool:
		return ast.NewBool(rv.Bool()), nil

	case reflect.String:
		return ast.NewString(rv.String()), nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return arrayNode(nil), nil
		}
		items := make([]*ast.ArrayItem, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			child, err := valueNode(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items = append(items, ast.NewArrayItem(child))
		}
		return arrayNode(items), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.NewUnsupportedValue(rv.Type().String())
		}
		keys := make([]string, 0, rv.Len())
		for _, key := range rv.MapKeys() {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)

		items := make([]*ast.ArrayItem, 0, len(keys))
		for _, key := range keys {
			item, err := keyedItem(key, rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return arrayNode(items), nil

	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return ast.NewNull(), nil
		}
	}

	if !rv.IsValid() {
		return ast.NewNull(), nil
	}
	return nil, errors.NewUnsupportedValue(rv.Type().String())
}

func keyedItem(key string, value any) (*ast.ArrayItem, error) {
	child, err := valueNode(value)
	if err != nil {
		return nil, err
	}
	return ast.NewKeyedArrayItem(ast.NewString(key), child), nil
}

func floatNode(value float64) (ast.Expr, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, errors.NewNonFiniteNumber(value)
	}
	if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		return ast.NewInt(int64(value)), nil
	}
	return ast.NewFloat(value), nil
}

func arrayNode(items []*ast.ArrayItem) *ast.Array {
	arr := ast.NewArray(items...)
	if len(items) == 0 {
		return arr
	}
	return ast.Multiline(arr)
}
