package ast

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
)

// Marshal encodes a node, or a slice of nodes, into the nikic/php-parser JSON
// shape: every node becomes an object whose first key is "nodeType" and whose
// last key is "attributes".
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is Marshal followed by two-space indentation.
func MarshalIndent(v any) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

var nodeInterface = reflect.TypeOf((*Node)(nil)).Elem()

func encodeValue(buf *bytes.Buffer, value reflect.Value) error {
	if !value.IsValid() {
		buf.WriteString("null")
		return nil
	}

	switch value.Kind() {
	case reflect.Interface, reflect.Pointer:
		if value.IsNil() {
			buf.WriteString("null")
			return nil
		}
	}

	if value.Type().Implements(nodeInterface) {
		return encodeNode(buf, value.Interface().(Node))
	}

	switch value.Kind() {
	case reflect.Interface, reflect.Pointer:
		return encodeValue(buf, value.Elem())
	case reflect.Slice:
		if value.IsNil() {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('[')
		for i := 0; i < value.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, value.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	encoded, err := json.Marshal(value.Interface())
	if err != nil {
		return fmt.Errorf("encode %s: %w", value.Type(), err)
	}
	buf.Write(encoded)
	return nil
}

func encodeNode(buf *bytes.Buffer, node Node) error {
	buf.WriteString(`{"nodeType":`)
	typeName, _ := json.Marshal(node.NodeType())
	buf.Write(typeName)

	value := reflect.ValueOf(node).Elem()
	fields := value.Type()
	for i := 0; i < fields.NumField(); i++ {
		field := fields.Field(i)
		tag := field.Tag.Get("php")
		if tag == "" || tag == "-" || !field.IsExported() {
			continue
		}

		buf.WriteByte(',')
		key, _ := json.Marshal(strings.Split(tag, ",")[0])
		buf.Write(key)
		buf.WriteByte(':')
		if err := encodeValue(buf, value.Field(i)); err != nil {
			return fmt.Errorf("%s.%s: %w", node.NodeType(), field.Name, err)
		}
	}

	buf.WriteString(`,"attributes":`)
	if err := encodeAttributes(buf, node.Attributes()); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func encodeAttributes(buf *bytes.Buffer, attrs *Attributes) error {
	buf.WriteByte('{')
	for i, entry := range attrs.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(entry.Key)
		buf.Write(key)
		buf.WriteByte(':')
		if err := encodeValue(buf, reflect.ValueOf(entry.Value)); err != nil {
			return fmt.Errorf("attribute %s: %w", entry.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}
