package ast

import (
	"reflect"
	"sort"
)

// Attribute is a single provenance entry on a node (source position, comments, array kind).
type Attribute struct {
	Key   string
	Value any
}

// Attributes is an ordered, immutable attribute bag. The zero-length bag is
// always the shared value returned by EmptyAttributes, so a no-op merge can be
// detected by pointer comparison.
type Attributes struct {
	entries []Attribute
}

var emptyAttributes = &Attributes{}

// Well-known attribute keys
const (
	AttrComments      = "comments"
	AttrKind          = "kind"
	AttrMultiline     = "multiline"
	AttrStartLine     = "startLine"
	AttrEndLine       = "endLine"
	AttrStartFilePos  = "startFilePos"
	AttrEndFilePos    = "endFilePos"
	AttrStartTokenPos = "startTokenPos"
	AttrEndTokenPos   = "endTokenPos"
)

// Array literal styles stored under AttrKind, matching nikic/php-parser
const (
	ArrayKindLong  = 1
	ArrayKindShort = 2
)

// EmptyAttributes returns the shared empty attribute bag.
func EmptyAttributes() *Attributes {
	return emptyAttributes
}

// NewAttributes normalises entries into a bag. Later duplicates override earlier
// ones in place. No entries yields the shared empty bag.
func NewAttributes(entries ...Attribute) *Attributes {
	if len(entries) == 0 {
		return emptyAttributes
	}

	bag := &Attributes{entries: make([]Attribute, 0, len(entries))}
	for _, entry := range entries {
		bag.put(entry.Key, entry.Value)
	}
	return bag
}

// AttributesFromMap builds a bag from a map, ordering keys alphabetically.
func AttributesFromMap(values map[string]any) *Attributes {
	if len(values) == 0 {
		return emptyAttributes
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Attribute, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Attribute{Key: key, Value: values[key]})
	}
	return NewAttributes(entries...)
}

func (a *Attributes) put(key string, value any) {
	for i := range a.entries {
		if a.entries[i].Key == key {
			a.entries[i].Value = value
			return
		}
	}
	a.entries = append(a.entries, Attribute{Key: key, Value: value})
}

// Len returns the number of entries.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// IsEmpty reports whether the bag has no entries.
func (a *Attributes) IsEmpty() bool {
	return a.Len() == 0
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	for _, entry := range a.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Entries returns a copy of the entries in order.
func (a *Attributes) Entries() []Attribute {
	if a.IsEmpty() {
		return nil
	}
	out := make([]Attribute, len(a.entries))
	copy(out, a.entries)
	return out
}

// Comments returns the comments attached under AttrComments.
func (a *Attributes) Comments() []*Comment {
	value, ok := a.Get(AttrComments)
	if !ok {
		return nil
	}
	comments, _ := value.([]*Comment)
	return comments
}

// Int returns an integer attribute, or zero when absent.
func (a *Attributes) Int(key string) int {
	value, ok := a.Get(key)
	if !ok {
		return 0
	}
	n, _ := value.(int)
	return n
}

// Bool returns a boolean attribute, or false when absent.
func (a *Attributes) Bool(key string) bool {
	value, ok := a.Get(key)
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// Merge returns the shallow union of a and other; keys in other win.
func (a *Attributes) Merge(other *Attributes) *Attributes {
	if other.IsEmpty() {
		return a.orEmpty()
	}
	if a.IsEmpty() {
		return NewAttributes(other.entries...)
	}

	merged := &Attributes{entries: make([]Attribute, 0, len(a.entries)+len(other.entries))}
	merged.entries = append(merged.entries, a.entries...)
	for _, entry := range other.entries {
		merged.put(entry.Key, entry.Value)
	}
	return merged
}

// Equal reports whether both bags hold the same keys with identical values.
// Slices and maps compare by reference.
func (a *Attributes) Equal(other *Attributes) bool {
	if a.orEmpty() == other.orEmpty() {
		return true
	}
	if a.Len() != other.Len() {
		return false
	}
	for _, entry := range a.entries {
		value, ok := other.Get(entry.Key)
		if !ok || !sameValue(entry.Value, value) {
			return false
		}
	}
	return true
}

func (a *Attributes) orEmpty() *Attributes {
	if a.IsEmpty() {
		return emptyAttributes
	}
	return a
}

func sameValue(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}

	lv := reflect.ValueOf(left)
	rv := reflect.ValueOf(right)
	if lv.Type() != rv.Type() {
		return false
	}

	switch lv.Kind() {
	case reflect.Slice:
		return lv.Len() == rv.Len() && (lv.Len() == 0 || lv.Pointer() == rv.Pointer())
	case reflect.Map, reflect.Func, reflect.Chan:
		return lv.Pointer() == rv.Pointer()
	}

	if !lv.Type().Comparable() {
		return false
	}
	return left == right
}
