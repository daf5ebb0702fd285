// Package orderedjson decodes and encodes JSON documents while keeping object
// members in the order they appeared in the source. Numbers are carried as
// their original text so a decode/encode cycle does not reformat them.
package orderedjson

import "encoding/json"

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node of a decoded JSON tree. The zero value is JSON null.
type Value struct {
	kind    Kind
	boolean bool
	num     json.Number
	str     string
	items   []*Value
	members []Member
}

// NewString returns a string node.
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewBool returns a boolean node.
func NewBool(b bool) *Value { return &Value{kind: Bool, boolean: b} }

// NewNumber returns a number node holding the literal text n.
func NewNumber(n json.Number) *Value { return &Value{kind: Number, num: n} }

// NewArray returns an array node containing items.
func NewArray(items ...*Value) *Value { return &Value{kind: Array, items: items} }

// NewObject returns an empty object node.
func NewObject() *Value { return &Value{kind: Object} }

// Kind returns the JSON type of v. A nil Value reports Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// Str returns the string content and whether v is a string.
func (v *Value) Str() (string, bool) {
	if v.Kind() != String {
		return "", false
	}
	return v.str, true
}

// SetStr turns v into a string node holding s.
func (v *Value) SetStr(s string) {
	*v = Value{kind: String, str: s}
}

// Len returns the number of array items or object members.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th array item, or nil when v is not an array or i is
// out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != Array || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns the array items. The slice aliases v.
func (v *Value) Items() []*Value {
	if v.Kind() != Array {
		return nil
	}
	return v.items
}

// Append adds items to the end of an array node.
func (v *Value) Append(items ...*Value) {
	if v.Kind() != Array {
		return
	}
	v.items = append(v.items, items...)
}

// Members returns the object members in source order. The slice aliases v.
func (v *Value) Members() []Member {
	if v.Kind() != Object {
		return nil
	}
	return v.members
}

// Get returns the member value for key, or nil.
func (v *Value) Get(key string) *Value {
	if v.Kind() != Object {
		return nil
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Has reports whether an object node contains key.
func (v *Value) Has(key string) bool {
	if v.Kind() != Object {
		return false
	}
	for _, m := range v.members {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Set replaces the value for key in place, or appends a new member when the
// key is absent.
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != Object {
		return
	}
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Path walks nested objects by key and returns the final value, or nil when
// any step is missing.
func (v *Value) Path(keys ...string) *Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}
